package web

import (
	"encoding/json"
	"net/http"

	"github.com/quizforge/quizd/internal/bank"
	"github.com/quizforge/quizd/internal/quiz"
)

// apiQuestion is the wire view of a question. The answer key is never
// serialized; the client learns it only through feedback after grading.
type apiQuestion struct {
	Index             int         `json:"index"`
	Number            string      `json:"number,omitempty"`
	Text              string      `json:"text"`
	Options           []apiOption `json:"options"`
	Multi             bool        `json:"multi"`
	Simulation        bool        `json:"simulation"`
	SimulationDetails string      `json:"simulation_details,omitempty"`
}

type apiOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type apiSessionView struct {
	Current  int            `json:"current"`
	Score    int            `json:"score"`
	Total    int            `json:"total"`
	Finished bool           `json:"finished"`
	Question *apiQuestion   `json:"question,omitempty"`
	Feedback *quiz.Feedback `json:"feedback,omitempty"`
}

func toAPIQuestion(q bank.Question) *apiQuestion {
	out := &apiQuestion{
		Index:             q.Index,
		Number:            q.Number,
		Text:              q.Text,
		Multi:             q.Key != nil && q.Key.Mode == bank.ModeMulti,
		Simulation:        q.Simulation,
		SimulationDetails: q.SimulationDetails,
	}
	for _, o := range q.Options {
		out.Options = append(out.Options, apiOption{Key: o.Key, Text: o.Text})
	}
	return out
}

func (h *Handler) sessionView(st quiz.State) apiSessionView {
	view := apiSessionView{
		Current:  st.Current,
		Score:    st.Score,
		Total:    h.engine.Total(),
		Finished: h.engine.Finished(st),
	}
	if !view.Finished {
		if q, ok := h.engine.Bank().Question(st.Current); ok {
			view.Question = toAPIQuestion(q)
		}
		view.Feedback = h.engine.FeedbackAt(st, st.Current)
	}
	return view
}

func (h *Handler) apiSession(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	st, err := h.loadState(r.Context(), sid)
	if err != nil {
		h.fail(w, "load session", err)
		return
	}
	writeJSON(w, h.sessionView(st))
}

func (h *Handler) apiNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	var dir quiz.Direction
	switch req.Direction {
	case "next":
		dir = quiz.Next
	case "prev":
		dir = quiz.Prev
	default:
		http.Error(w, "direction must be next or prev", http.StatusBadRequest)
		return
	}

	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	ctx := r.Context()
	st, err := h.loadState(ctx, sid)
	if err != nil {
		h.fail(w, "load session", err)
		return
	}
	st = h.engine.Navigate(st, dir)
	if err := h.store.Save(ctx, sid, st); err != nil {
		h.fail(w, "save session", err)
		return
	}
	writeJSON(w, h.sessionView(st))
}

func (h *Handler) apiAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index     int      `json:"index"`
		Selection []string `json:"selection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	ctx := r.Context()
	st, err := h.loadState(ctx, sid)
	if err != nil {
		h.fail(w, "load session", err)
		return
	}
	next, fb := h.engine.Submit(st, req.Index, req.Selection)
	if fb != nil {
		if err := h.store.Save(ctx, sid, next); err != nil {
			h.fail(w, "save session", err)
			return
		}
	}
	writeJSON(w, struct {
		Accepted bool           `json:"accepted"`
		Feedback *quiz.Feedback `json:"feedback,omitempty"`
		Score    int            `json:"score"`
	}{Accepted: fb != nil, Feedback: fb, Score: next.Score})
}

func (h *Handler) apiReset(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	if err := h.store.Delete(r.Context(), sid); err != nil {
		h.fail(w, "reset session", err)
		return
	}
	writeJSON(w, h.sessionView(quiz.NewState()))
}

func (h *Handler) apiSummary(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	st, err := h.loadState(r.Context(), sid)
	if err != nil {
		h.fail(w, "load session", err)
		return
	}
	if !h.engine.Finished(st) {
		http.Error(w, "quiz not finished", http.StatusConflict)
		return
	}
	writeJSON(w, h.engine.Summary(st))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
