package grading

import (
	"github.com/quizforge/quizd/internal/bank"
)

// Outcome is the result of grading one submission.
//
// Invalid marks a structurally wrong submission: unknown option keys, more
// than one key for a single-choice question, or an empty multi-choice
// selection. Invalid submissions are never correct, but callers still record
// them so the user can see why no credit was given.
type Outcome struct {
	Correct bool
	Invalid bool
}

// Strategy grades a single question's submission.
type Strategy interface {
	Grade(q bank.Question, selection []string) Outcome
}

// Grader routes by answer mode to the correct Strategy.
type Grader interface {
	Grade(q bank.Question, selection []string) Outcome
}

type defaultGrader struct {
	strategies map[bank.AnswerMode]Strategy
}

// NewGrader installs the built-in strategies.
func NewGrader() Grader {
	return &defaultGrader{
		strategies: map[bank.AnswerMode]Strategy{
			bank.ModeSingle: singleChoiceStrategy{},
			bank.ModeMulti:  multiChoiceStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(q bank.Question, selection []string) Outcome {
	if q.Key == nil {
		return Outcome{Invalid: true}
	}
	s, ok := g.strategies[q.Key.Mode]
	if !ok {
		return Outcome{Invalid: true}
	}
	return s.Grade(q, selection)
}

// --- Strategies ---

type singleChoiceStrategy struct{}

func (singleChoiceStrategy) Grade(q bank.Question, selection []string) Outcome {
	if len(selection) != 1 || !q.HasOption(selection[0]) {
		return Outcome{Invalid: true}
	}
	return Outcome{Correct: selection[0] == q.Key.Keys[0]}
}

type multiChoiceStrategy struct{}

func (multiChoiceStrategy) Grade(q bank.Question, selection []string) Outcome {
	set := dedupe(selection)
	if len(set) == 0 {
		return Outcome{Invalid: true}
	}
	for _, k := range set {
		if !q.HasOption(k) {
			return Outcome{Invalid: true}
		}
	}
	// Exact match only: a subset or superset of the answer key earns nothing.
	return Outcome{Correct: equalStringSets(set, q.Key.Keys)}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[string]int{}
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		seen[s]--
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}
