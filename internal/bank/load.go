package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrEmptyBank is returned when a bank file parses cleanly but contains no
// questions. An empty bank is a startup-fatal condition for callers.
var ErrEmptyBank = errors.New("question bank is empty")

// Bank is the ordered, immutable question store. It is loaded once at
// startup and only ever read afterwards, so it is safe to share across
// sessions without locking.
type Bank struct {
	questions []Question
}

// Load reads, validates, and normalizes a question-bank file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Parse builds a Bank from raw JSON bank-file contents.
func Parse(data []byte) (*Bank, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if err := validateBank(doc); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyBank
	}

	qs := make([]Question, len(raw))
	for i, rq := range raw {
		qs[i] = normalize(i, rq)
	}
	return &Bank{questions: qs}, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.questions) }

// Question returns the question at index i.
func (b *Bank) Question(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}

// Questions returns the full ordered question list.
func (b *Bank) Questions() []Question { return b.questions }
