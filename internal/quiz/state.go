package quiz

// Result is the permanent grading record for one answered question. Once
// stored it is never overwritten or deleted except by a full session reset.
//
// CorrectAnswer echoes the answer key as it was at grading time so the
// record redisplays stably even if the bank file later changes.
type Result struct {
	Correct       bool     `json:"correct"`
	YourAnswer    []string `json:"your_answer"`
	CorrectAnswer []string `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// State is the mutable, session-scoped quiz state. The engine treats it as
// a value: every operation returns a new State and never mutates shared
// structure, so the hosting layer can persist it however it likes.
type State struct {
	Current int            `json:"current"`
	Score   int            `json:"score"`
	Results map[int]Result `json:"results"`
}

// NewState returns the initial state: question 0, zero score, no results.
func NewState() State {
	return State{Results: map[int]Result{}}
}

// Clamp normalizes a state loaded from storage: a missing results map is
// materialized and an out-of-range index snaps back to question 0.
// Current == total is in range; it is the results screen.
func (s State) Clamp(total int) State {
	if s.Results == nil {
		s.Results = map[int]Result{}
	}
	if s.Current < 0 || s.Current > total {
		s.Current = 0
	}
	return s
}

// Answered reports whether a result has been recorded for index i.
func (s State) Answered(i int) bool {
	_, ok := s.Results[i]
	return ok
}

func cloneResults(in map[int]Result) map[int]Result {
	out := make(map[int]Result, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
