package quiz

import "strings"

// Display literals used when a stored record has nothing to show.
const (
	NoAnswerMarker = "[No Answer Selected]"
	NoExplanation  = "No explanation available."
)

// Feedback is the render-facing projection of one stored Result. It is
// derived purely from the record, never from how or when the record was
// produced.
type Feedback struct {
	Correct       bool     `json:"correct"`
	YourAnswer    string   `json:"your_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	YourKeys      []string `json:"your_keys"`
	CorrectKeys   []string `json:"correct_keys"`
	MultiCorrect  bool     `json:"multi_correct"`
	Explanation   string   `json:"explanation"`
}

// FeedbackAt reconstructs feedback for the question at index, or nil when
// no result has been recorded there. Reconstruction is idempotent and
// side-effect-free.
func (e *Engine) FeedbackAt(st State, index int) *Feedback {
	res, ok := st.Results[index]
	if !ok {
		return nil
	}
	fb := feedbackFromResult(res)
	return &fb
}

func feedbackFromResult(r Result) Feedback {
	your := strings.Join(r.YourAnswer, ", ")
	if your == "" {
		your = NoAnswerMarker
	}
	ex := r.Explanation
	if ex == "" {
		ex = NoExplanation
	}
	return Feedback{
		Correct:       r.Correct,
		YourAnswer:    your,
		CorrectAnswer: strings.Join(r.CorrectAnswer, ", "),
		YourKeys:      r.YourAnswer,
		CorrectKeys:   r.CorrectAnswer,
		MultiCorrect:  len(r.CorrectAnswer) > 1,
		Explanation:   ex,
	}
}
