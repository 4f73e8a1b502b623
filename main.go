package main

import (
	"context"
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobfinder/api/config"
	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/data/repos"
	"github.com/jobfinder/api/handlers"
	"github.com/jobfinder/api/metrics"
	"github.com/jobfinder/api/realtime"
)

var (
	auth           *handlers.AuthHandler
	UserContextKey = "user"
)

//go:embed data/migrations/*.sql
var embedMigrations embed.FS

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", config.Config.PostgresURL)
	if err != nil {
		slog.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(90)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := data.RunMigrations(db.DB, embedMigrations); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	usersRepo := repos.NewUserRepo(db)
	vacancyRepo := repos.NewVacancyRepo(db)
	messageRepo := repos.NewMessageRepo(db)

	auth = handlers.NewAuthHandler(usersRepo)

	hub := realtime.NewHub(auth, messageRepo, logger)
	dispatcher := realtime.NewDispatcher(usersRepo, hub, logger)

	vacancies := handlers.NewVacancyHandler(vacancyRepo, usersRepo, dispatcher)
	messages := handlers.NewMessageHandler(messageRepo, vacancyRepo, hub)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", public(auth.Register))
	mux.HandleFunc("POST /api/auth/login", public(auth.Login))
	mux.HandleFunc("GET /api/auth/me", private(auth.Me))
	mux.HandleFunc("PUT /api/auth/interests", private(auth.UpdateInterests))
	mux.HandleFunc("GET /api/auth/keywords", public(auth.GetKeywords))

	mux.HandleFunc("GET /api/vacancies", public(vacancies.GetVacancies))
	mux.HandleFunc("POST /api/vacancies", private(vacancies.CreateVacancy))
	mux.HandleFunc("GET /api/vacancies/my", private(vacancies.MyVacancies))
	mux.HandleFunc("GET /api/vacancies/new-count", private(vacancies.NewCount))
	mux.HandleFunc("POST /api/vacancies/mark-checked", private(vacancies.MarkChecked))
	mux.HandleFunc("GET /api/vacancies/relevant", private(vacancies.RelevantVacancies))
	mux.HandleFunc("POST /api/vacancies/{id}/apply", private(vacancies.ApplyToVacancy))
	mux.HandleFunc("PUT /api/vacancies/{id}", private(vacancies.UpdateVacancy))
	mux.HandleFunc("DELETE /api/vacancies/{id}", private(vacancies.DeleteVacancy))

	mux.HandleFunc("GET /api/messages/conversations", private(messages.GetConversations))
	mux.HandleFunc("POST /api/messages/conversations/create", private(messages.CreateConversation))
	mux.HandleFunc("GET /api/messages/{conversationId}", private(messages.GetMessages))
	mux.HandleFunc("POST /api/messages/{conversationId}", private(messages.SendMessage))

	mux.HandleFunc("GET /ws", hub.ServeWS)
	mux.Handle("GET /metrics", promhttp.Handler())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		if err := db.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
		os.Exit(0)
	}()

	slog.Info("Starting server", "port", config.Config.Port)
	err = http.ListenAndServe(":"+config.Config.Port, withCORS(mux))
	if err != nil {
		slog.Error("failed to start server", "error", err)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", config.Config.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func private(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := auth.GetUser(r.Header.Get("Authorization"))
		if result.Code != http.StatusOK {
			slog.Debug("unauthorized request", "path", r.URL.Path)
			writeResult(w, result)
			return
		}

		user := result.Body.(data.User)
		ctx := context.WithValue(r.Context(), UserContextKey, user)

		public(handler)(w, r.WithContext(ctx))
	}
}

func public(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		slog.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		writeResult(w, res)
	}
}

func writeResult(w http.ResponseWriter, res handlers.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Code)
	if res.Body != nil {
		if err := json.NewEncoder(w).Encode(res.Body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
	if res.Code == http.StatusInternalServerError {
		slog.Error("internal error", "error", res.Error.Error())
	}
}
