package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/quizforge/quizd/internal/quiz"
	"github.com/quizforge/quizd/internal/session"
)

// Options configures the presentation layer.
type Options struct {
	Title        string
	DefaultTheme string
	CORSOrigins  []string
}

// Handler owns the HTTP surface: the server-rendered quiz UI and the JSON
// API. All session-state mutation goes through the quiz engine; the handler
// only loads, forwards events, and saves.
type Handler struct {
	engine *quiz.Engine
	store  session.Store
	codec  *session.Codec
	locks  *session.Locks
	log    *slog.Logger
	opts   Options
}

func New(engine *quiz.Engine, store session.Store, codec *session.Codec, log *slog.Logger, opts Options) *Handler {
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = themes[0]
	}
	return &Handler{
		engine: engine,
		store:  store,
		codec:  codec,
		locks:  session.NewLocks(),
		log:    log,
		opts:   opts,
	}
}

// Routes mounts the UI and API routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.page)
	r.Post("/submit", h.submit)
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	r.Route("/api", func(ar chi.Router) {
		ar.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		ar.Get("/session", h.apiSession)
		ar.Post("/session/navigate", h.apiNavigate)
		ar.Post("/session/answer", h.apiAnswer)
		ar.Post("/session/reset", h.apiReset)
		ar.Get("/session/summary", h.apiSummary)
	})

	return r
}

// sid returns the request's session ID, minting and setting a fresh one
// when the cookie is missing or invalid.
func (h *Handler) sid(w http.ResponseWriter, r *http.Request) string {
	if sid, ok := h.codec.ReadCookie(r); ok {
		return sid
	}
	sid := session.NewID()
	if err := h.codec.WriteCookie(w, sid); err != nil {
		h.log.Error("write session cookie", "err", err)
	}
	return sid
}

// loadState fetches the session's state, starting fresh on first touch,
// and clamps a stored out-of-range pointer back to question 0.
func (h *Handler) loadState(ctx context.Context, sid string) (quiz.State, error) {
	st, err := h.store.Load(ctx, sid)
	if errors.Is(err, session.ErrNotFound) {
		return quiz.NewState(), nil
	}
	if err != nil {
		return quiz.State{}, err
	}
	return st.Clamp(h.engine.Total()), nil
}

// page serves GET /: theme switching, prev/next/reset actions (handled
// post-redirect-get style), and rendering of the current question or the
// results summary.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if theme := r.URL.Query().Get("theme"); theme != "" {
		if knownTheme(theme) {
			setThemeCookie(w, theme)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if action := r.URL.Query().Get("action"); action != "" {
		h.handleAction(w, r, action)
		return
	}

	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	st, err := h.loadState(r.Context(), sid)
	if err != nil {
		h.fail(w, "load session", err)
		return
	}
	h.render(w, r, st)
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request, action string) {
	sid := h.sid(w, r)
	mu := h.locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	ctx := r.Context()
	switch action {
	case "next", "prev":
		st, err := h.loadState(ctx, sid)
		if err != nil {
			h.fail(w, "load session", err)
			return
		}
		dir := quiz.Next
		if action == "prev" {
			dir = quiz.Prev
		}
		st = h.engine.Navigate(st, dir)
		if err := h.store.Save(ctx, sid, st); err != nil {
			h.fail(w, "save session", err)
			return
		}
	case "reset":
		if err := h.store.Delete(ctx, sid); err != nil {
			h.fail(w, "reset session", err)
			return
		}
	}
	// Redirect to a clean URL so no action survives a refresh.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// submit grades POST /submit and re-renders the page with feedback without
// a second load of the stored state.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.PostForm.Get("question_index"))
	if err != nil {
		http.Error(w, "bad question index", http.StatusBadRequest)
		return
	}
	selection := r.PostForm["answer"]

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
	next, fb := h.engine.Submit(st, index, selection)
	if fb != nil {
		if err := h.store.Save(ctx, sid, next); err != nil {
			h.fail(w, "save session", err)
			return
		}
	}
	// A rejected submission (fb == nil) changes nothing; render whatever
	// the session already holds.
	h.render(w, r, next)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
