package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	api "github.com/examstack/examstack/internal/api/http"
	"github.com/examstack/examstack/internal/auth"
	"github.com/examstack/examstack/internal/bank"
	"github.com/examstack/examstack/internal/config"
	"github.com/examstack/examstack/internal/db"
	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
	"github.com/examstack/examstack/internal/scores"
	"github.com/examstack/examstack/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	cfg := config.FromEnv()

	// --- Question bank (fatal when missing: no sessions without it) ---
	pool, stats, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Fatalf("question bank: %v", err)
	}
	log.Printf("bank %s: %d questions (%d rows discarded)", cfg.BankPath, len(pool), stats.Discarded)

	// --- Result sink ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	sink := scores.NewSQLSink(dbh, cfg.DBDriver)

	// --- Sessions ---
	mgr := session.NewManager(cfg.SessionTTL, sink)
	tokens := auth.NewTokenService(cfg.SessionHMACSecret, cfg.SessionTTL)

	c := cron.New()
	if _, err := c.AddFunc(cfg.SessionSweep, func() {
		if n := mgr.Sweep(); n > 0 {
			log.Printf("session sweep: dropped %d idle sessions", n)
		}
	}); err != nil {
		log.Fatalf("session sweep schedule %q: %v", cfg.SessionSweep, err)
	}
	c.Start()

	// --- Exam sampling (memoized; same seed, same exam for everyone) ---
	counts := exam.Counts{Single: cfg.NumSingle, Multiple: cfg.NumMultiple, TrueFalse: cfg.NumTrueFalse}
	weights := grading.Weights{Single: cfg.SingleScore, Multiple: cfg.MultipleScore}
	var memo exam.Memo
	build := func() *exam.Sample { return memo.Sample(pool, counts, cfg.SamplingSeed) }

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Admin-Password"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/session", api.CreateSessionHandler(mgr, tokens))

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Middleware)
		pr.Get("/api/session", api.GetSessionHandler(mgr))
		pr.Delete("/api/session", api.DeleteSessionHandler(mgr))
		pr.Get("/api/session/exam", api.GetExamHandler(mgr, build, weights))
		pr.Post("/api/session/answers", api.RecordAnswerHandler(mgr))
		pr.Post("/api/session/submit", api.SubmitHandler(mgr, weights))
		pr.Get("/api/session/result", api.GetResultHandler(mgr))
	})

	r.Group(func(ar chi.Router) {
		ar.Use(api.AdminGate(cfg.AdminPassword))
		ar.Get("/api/admin/scores", api.AdminScoresHandler(sink))
		ar.Get("/api/admin/scores.csv", api.AdminScoresCSVHandler(sink))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, bank=%d questions)", cfg.HTTPAddr, cfg.DBDriver, len(pool))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
