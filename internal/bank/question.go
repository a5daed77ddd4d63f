package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AnswerMode distinguishes single-choice from multi-choice questions.
// The mode is fixed once at load time from the shape of the bank file's
// correct-answer string and never re-derived afterwards.
type AnswerMode int

const (
	ModeSingle AnswerMode = iota
	ModeMulti
)

// AnswerKey is the parsed correct answer of a gradable question.
// Keys is always sorted so set comparisons can rely on order.
type AnswerKey struct {
	Mode AnswerMode
	Keys []string
}

// Option is a single answer choice. Options keep the order they appear in
// the bank file, which is also their display order.
type Option struct {
	Key  string
	Text string
}

// Question is the normalized, immutable form of one bank entry.
type Question struct {
	Index             int
	Number            string
	Text              string
	Options           []Option
	Key               *AnswerKey // nil when the question cannot be graded
	Explanation       string
	Simulation        bool
	SimulationDetails string
}

// HasOption reports whether key names one of the question's options.
func (q Question) HasOption(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// rawQuestion mirrors one entry of the bank file before normalization.
type rawQuestion struct {
	Number            flexString `json:"question_number"`
	Text              string     `json:"question_text"`
	Options           optionList `json:"options"`
	CorrectAnswer     *string    `json:"correct_answer"`
	Explanation       string     `json:"explanation"`
	IsSimulation      bool       `json:"is_simulation"`
	SimulationDetails string     `json:"simulation_details"`
}

// flexString accepts a JSON string, number, or null. Bank files are not
// consistent about how they label question numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question_number must be a string or number")
	}
	*f = flexString(n.String())
	return nil
}

// optionList decodes a JSON object while preserving its key order.
// encoding/json maps would lose the display order of the options.
type optionList []Option

func (o *optionList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("options must be an object")
	}
	var out []Option
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("option key must be a string")
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("option %q: text must be a string", key)
		}
		out = append(out, Option{Key: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// normalize converts a raw bank entry into its load-time model: the answer
// mode is decided here, and simulation status becomes a plain stored flag.
func normalize(index int, rq rawQuestion) Question {
	q := Question{
		Index:             index,
		Number:            string(rq.Number),
		Text:              rq.Text,
		Options:           rq.Options,
		Explanation:       rq.Explanation,
		SimulationDetails: rq.SimulationDetails,
	}
	if rq.CorrectAnswer != nil {
		if keys := strings.Fields(*rq.CorrectAnswer); len(keys) > 0 {
			sort.Strings(keys)
			mode := ModeSingle
			if len(keys) > 1 {
				mode = ModeMulti
			}
			q.Key = &AnswerKey{Mode: mode, Keys: keys}
		}
	}
	// A question with no options or no answer key cannot be graded and is
	// treated as a simulation even without the explicit flag.
	q.Simulation = rq.IsSimulation || len(q.Options) == 0 || q.Key == nil
	return q
}
