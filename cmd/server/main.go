package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/blog-cms/internal/config"
	"github.com/yourusername/blog-cms/internal/handlers"
	"github.com/yourusername/blog-cms/internal/middleware"
	"github.com/yourusername/blog-cms/internal/render"
	"github.com/yourusername/blog-cms/internal/repository"
	"github.com/yourusername/blog-cms/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.FromEnv()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis")
	}
	defer redisClient.Close()

	renderer, err := render.NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)

	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	h := handlers.NewPostHandler(postRepo, categoryRepo, renderer)

	r := newRouter(cfg, h, renderer, sessions)

	log.Info().Str("addr", cfg.Addr).Msg("Server starting")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func initDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := repository.CreateTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func newRouter(cfg *config.Config, h *handlers.PostHandler, renderer render.Renderer, sessions session.Store) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recover)
	r.Use(session.Middleware(sessions, cfg.SessionTTL))

	// Public pages.
	r.HandleFunc("/", h.RedirectPosts).Methods("GET")
	r.HandleFunc("/posts", h.GetPosts).Methods("GET")
	r.HandleFunc("/posts/{page}", h.GetPosts).Methods("GET")
	r.HandleFunc("/post", h.GetPost).Methods("GET")

	// Admin pages and actions. Authentication sits in front of this
	// subrouter in deployment; it is not part of this service.
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Handle("/post/list", handlers.ErrorPage(renderer, h.PostListPage)).Methods("GET")
	admin.Handle("/post/add", handlers.ErrorPage(renderer, h.PostAddPage)).Methods("GET")
	admin.Handle("/post/edit", handlers.ErrorPage(renderer, h.PostEditPage)).Methods("GET")
	admin.HandleFunc("/post/create", h.CreatePost).Methods("POST")
	admin.HandleFunc("/post/edit", h.EditPost).Methods("POST")
	admin.HandleFunc("/post/delete", h.DeletePost).Methods("GET", "POST")

	r.PathPrefix("/public/").Handler(
		http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.StaticDir))))

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}
