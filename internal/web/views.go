package web

import (
	"net/http"

	"github.com/quizforge/quizd/internal/bank"
	"github.com/quizforge/quizd/internal/quiz"
)

type basePage struct {
	Title  string
	Theme  string
	Themes []string
	Score  int
	Total  int
}

type optionView struct {
	ID       string
	Key      string
	Text     string
	Checked  bool
	Class    string
	Disabled bool
}

type questionPage struct {
	basePage
	Position          int // 1-based
	Index             int
	Simulation        bool
	Text              string
	Number            string
	SimulationDetails string
	Multi             bool
	Answered          bool
	Feedback          *quiz.Feedback
	Options           []optionView
	PrevDisabled      bool
	NextLabel         string
}

type summaryLine struct {
	Position      int
	Number        string
	Snippet       string
	Kind          string // graded|simulation|unanswered
	Correct       bool
	YourAnswer    string
	CorrectAnswer string
}

type resultsPage struct {
	basePage
	Percentage   float64
	Lines        []summaryLine
	PrevDisabled bool
}

// render draws the current question or, at the end position, the results
// summary. Feedback is always reconstructed from the stored result, so a
// page refresh after submitting shows the same thing as the submit
// response did.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, st quiz.State) {
	base := basePage{
		Title:  h.opts.Title,
		Theme:  h.theme(r),
		Themes: themes,
		Score:  st.Score,
		Total:  h.engine.Total(),
	}
	if h.engine.Finished(st) {
		h.renderResults(w, base, st)
		return
	}
	h.renderQuestion(w, base, st)
}

func (h *Handler) renderQuestion(w http.ResponseWriter, base basePage, st quiz.State) {
	q, ok := h.engine.Bank().Question(st.Current)
	if !ok {
		http.Error(w, "question data missing", http.StatusInternalServerError)
		return
	}
	fb := h.engine.FeedbackAt(st, st.Current)
	page := questionPage{
		basePage:          base,
		Position:          st.Current + 1,
		Index:             st.Current,
		Simulation:        q.Simulation,
		Text:              q.Text,
		Number:            q.Number,
		SimulationDetails: q.SimulationDetails,
		Multi:             q.Key != nil && q.Key.Mode == bank.ModeMulti,
		Answered:          st.Answered(st.Current),
		Feedback:          fb,
		Options:           optionViews(q, fb),
		PrevDisabled:      st.Current <= 0,
		NextLabel:         nextLabel(q, st.Current, h.engine.Total()),
	}
	h.execute(w, questionTmpl, page)
}

func (h *Handler) renderResults(w http.ResponseWriter, base basePage, st quiz.State) {
	sum := h.engine.Summary(st)
	page := resultsPage{
		basePage:     base,
		Percentage:   sum.Percentage,
		PrevDisabled: st.Current <= 0,
	}
	for _, item := range sum.Items {
		line := summaryLine{
			Position: item.Index + 1,
			Number:   item.Number,
			Snippet:  item.Snippet,
		}
		switch item.Kind {
		case quiz.LineSimulation:
			line.Kind = "simulation"
		case quiz.LineGraded:
			line.Kind = "graded"
			line.Correct = item.Feedback.Correct
			line.YourAnswer = item.Feedback.YourAnswer
			line.CorrectAnswer = item.Feedback.CorrectAnswer
		default:
			line.Kind = "unanswered"
		}
		page.Lines = append(page.Lines, line)
	}
	h.execute(w, resultsTmpl, page)
}

// optionViews computes each option's render state: which inputs are
// checked, which get highlighted as the user's correct/incorrect picks, and
// which missed correct answers get flagged after a wrong submission.
func optionViews(q bank.Question, fb *quiz.Feedback) []optionView {
	out := make([]optionView, 0, len(q.Options))
	for _, o := range q.Options {
		v := optionView{
			ID:    "option_" + o.Key,
			Key:   o.Key,
			Text:  o.Text,
			Class: "option-label",
		}
		if fb != nil {
			v.Disabled = true
			v.Class += " disabled"
			v.Checked = contains(fb.YourKeys, o.Key)
			isCorrectKey := contains(fb.CorrectKeys, o.Key)
			switch {
			case v.Checked && isCorrectKey:
				v.Class += " selected-correct"
			case v.Checked:
				v.Class += " selected-incorrect"
			case !fb.Correct && isCorrectKey:
				v.Class += " correct-answer-highlight"
			}
		}
		out = append(out, v)
	}
	return out
}

func nextLabel(q bank.Question, index, total int) string {
	last := index == total-1
	switch {
	case last:
		return "View Results"
	case q.Simulation:
		return "Next Simulation/Question"
	default:
		return "Next Question"
	}
}

func contains(keys []string, k string) bool {
	for _, s := range keys {
		if s == k {
			return true
		}
	}
	return false
}
