package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"

	"github.com/quizforge/quizd/internal/bank"
	"github.com/quizforge/quizd/internal/config"
	"github.com/quizforge/quizd/internal/db"
	"github.com/quizforge/quizd/internal/quiz"
	"github.com/quizforge/quizd/internal/session"
	"github.com/quizforge/quizd/internal/web"
)

func main() {
	cfg := config.FromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// --- Question bank ---
	// A missing, malformed, or empty bank means there is no quiz to run.
	b, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Fatalf("load question bank %q: %v", cfg.BankPath, err)
	}
	engine := quiz.New(b)
	logger.Info("question bank loaded", "path", cfg.BankPath, "questions", b.Len())

	// --- Session store ---
	var store session.Store
	switch cfg.DBDriver {
	case "memory":
		store = session.NewMemoryStore()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		store = session.NewSQLStore(dbh)
	}

	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	h := web.New(engine, store, codec, logger, web.Options{
		Title:        cfg.Title,
		DefaultTheme: cfg.DefaultTheme,
		CORSOrigins:  cfg.CORSOrigins,
	})
	r.Mount("/", h.Routes())

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
