package quiz

import (
	"github.com/quizforge/quizd/internal/bank"
	"github.com/quizforge/quizd/internal/grading"
)

// Direction is a navigation event.
type Direction int

const (
	Prev Direction = iota
	Next
)

// InvalidSelectionExplanation replaces the question's explanation on a
// structurally invalid submission, so the stored record shows why no credit
// was given.
const InvalidSelectionExplanation = "Invalid selection: the submitted answer does not match this question's options."

// Engine is the quiz session state machine. It holds only the immutable
// question bank and a grader; every operation is a pure function of
// (State, event) and returns the successor State.
type Engine struct {
	bank   *bank.Bank
	grader grading.Grader
}

// New builds an engine over a loaded question bank.
func New(b *bank.Bank) *Engine {
	return &Engine{bank: b, grader: grading.NewGrader()}
}

// Total returns the number of questions in the bank.
func (e *Engine) Total() int { return e.bank.Len() }

// Bank exposes the question store for rendering.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// Navigate moves the current-question pointer. Next is allowed while the
// pointer is below the question count, so it can reach the results position
// (== total) but never pass it; prev is allowed above zero. Boundary
// requests are no-ops. Navigation never checks whether the current question
// was answered.
func (e *Engine) Navigate(st State, d Direction) State {
	switch d {
	case Next:
		if st.Current < e.Total() {
			st.Current++
		}
	case Prev:
		if st.Current > 0 {
			st.Current--
		}
	}
	return st
}

// Submit grades a submission for the question at index and records the
// result. The submission is silently ignored, with no state change and no
// feedback, when the index is out of range, names a simulation, already has
// a result, or is not the current question.
func (e *Engine) Submit(st State, index int, selection []string) (State, *Feedback) {
	q, ok := e.bank.Question(index)
	if !ok || q.Simulation || index != st.Current {
		return st, nil
	}
	if st.Answered(index) {
		return st, nil
	}

	out := e.grader.Grade(q, selection)
	res := Result{
		Correct:       out.Correct,
		YourAnswer:    append([]string(nil), selection...),
		CorrectAnswer: append([]string(nil), q.Key.Keys...),
		Explanation:   q.Explanation,
	}
	if out.Invalid {
		res.Explanation = InvalidSelectionExplanation
	}

	if res.Correct {
		st.Score++
	}
	st.Results = cloneResults(st.Results)
	st.Results[index] = res

	fb := feedbackFromResult(res)
	return st, &fb
}

// Reset returns a fresh initial state, discarding pointer, score, and the
// whole result ledger.
func (e *Engine) Reset() State { return NewState() }

// Finished reports whether the state is at the results position.
func (e *Engine) Finished(st State) bool { return st.Current == e.Total() }
