package quiz

import (
	"math"
	"strings"
)

// LineKind classifies one results-summary line item.
type LineKind int

const (
	LineGraded LineKind = iota
	LineSimulation
	LineUnanswered
)

// LineItem is one question's outcome in the results summary.
type LineItem struct {
	Index    int       `json:"index"`
	Number   string    `json:"number,omitempty"`
	Snippet  string    `json:"snippet"`
	Kind     LineKind  `json:"kind"`
	Feedback *Feedback `json:"feedback,omitempty"`
}

// Summary is the end-of-quiz report.
type Summary struct {
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
	Items      []LineItem `json:"items"`
}

const snippetLen = 50

// Summary enumerates every question's outcome. Classification is computed
// fresh from the bank and the result ledger on every call; nothing is
// cached.
func (e *Engine) Summary(st State) Summary {
	total := e.Total()
	s := Summary{
		Score: st.Score,
		Total: total,
		Items: make([]LineItem, 0, total),
	}
	if total > 0 {
		s.Percentage = math.Round(float64(st.Score)/float64(total)*1000) / 10
	}
	for _, q := range e.bank.Questions() {
		item := LineItem{
			Index:   q.Index,
			Number:  q.Number,
			Snippet: snippet(q.Text),
		}
		switch {
		case q.Simulation:
			item.Kind = LineSimulation
		case st.Answered(q.Index):
			item.Kind = LineGraded
			item.Feedback = e.FeedbackAt(st, q.Index)
		default:
			item.Kind = LineUnanswered
		}
		s.Items = append(s.Items, item)
	}
	return s
}

func snippet(text string) string {
	if text == "" {
		return "[No Text]"
	}
	r := []rune(text)
	if len(r) <= snippetLen {
		return text
	}
	return strings.TrimRight(string(r[:snippetLen]), " ") + "..."
}
