package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizforge/quizd/internal/bank"
)

func singleQ(correct string) bank.Question {
	return bank.Question{
		Options: []bank.Option{{Key: "A"}, {Key: "B"}, {Key: "C"}, {Key: "D"}},
		Key:     &bank.AnswerKey{Mode: bank.ModeSingle, Keys: []string{correct}},
	}
}

func multiQ(correct ...string) bank.Question {
	return bank.Question{
		Options: []bank.Option{{Key: "A"}, {Key: "B"}, {Key: "C"}, {Key: "D"}},
		Key:     &bank.AnswerKey{Mode: bank.ModeMulti, Keys: correct},
	}
}

func TestGrade_SingleChoice(t *testing.T) {
	g := NewGrader()

	tests := []struct {
		name      string
		selection []string
		want      Outcome
	}{
		{"correct", []string{"B"}, Outcome{Correct: true}},
		{"incorrect", []string{"A"}, Outcome{}},
		{"unknown key", []string{"Z"}, Outcome{Invalid: true}},
		{"empty", nil, Outcome{Invalid: true}},
		{"two keys", []string{"A", "B"}, Outcome{Invalid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Grade(singleQ("B"), tt.selection))
		})
	}
}

func TestGrade_MultiChoice(t *testing.T) {
	g := NewGrader()
	q := multiQ("A", "C")

	tests := []struct {
		name      string
		selection []string
		want      Outcome
	}{
		{"exact match", []string{"A", "C"}, Outcome{Correct: true}},
		{"order irrelevant", []string{"C", "A"}, Outcome{Correct: true}},
		{"duplicates collapse", []string{"A", "C", "A"}, Outcome{Correct: true}},
		{"proper subset", []string{"A"}, Outcome{}},
		{"proper superset", []string{"A", "C", "D"}, Outcome{}},
		{"disjoint", []string{"B", "D"}, Outcome{}},
		{"empty", nil, Outcome{Invalid: true}},
		{"unknown member", []string{"A", "Z"}, Outcome{Invalid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Grade(q, tt.selection))
		})
	}
}

func TestGrade_NoAnswerKey(t *testing.T) {
	g := NewGrader()
	out := g.Grade(bank.Question{}, []string{"A"})
	assert.True(t, out.Invalid)
	assert.False(t, out.Correct)
}
