package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/catalog"
	"github.com/Gakshith/finalproject/internal/config"
	"github.com/Gakshith/finalproject/internal/database"
	"github.com/Gakshith/finalproject/internal/handler"
	"github.com/Gakshith/finalproject/internal/logger"
	"github.com/Gakshith/finalproject/internal/repository"
	"github.com/Gakshith/finalproject/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environments set vars directly

	cfg := config.Load()
	log := logger.Get()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.WithError(err).Fatal("schema setup failed")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)

	tmdb := catalog.NewClient(cfg.TMDBAPIKey, log)

	authHandler := handler.NewAuthHandler(cfg, users, log)
	movieHandler := handler.NewMovieHandler(movies, reviews, tmdb, log)
	reviewHandler := handler.NewReviewHandler(movies, reviews, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authHandler, movieHandler, reviewHandler, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	log.WithField("env", cfg.Env).Infof("listening on %s", addr)

	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
