package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Gakshith/finalproject/internal/catalog"
	"github.com/Gakshith/finalproject/internal/middleware"
	"github.com/Gakshith/finalproject/internal/model"
	"github.com/Gakshith/finalproject/internal/repository"
)

// MovieHandler serves the attach-movie and per-movie review listing
// endpoints. Both operate on the caller's own copy of a catalog entry.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
	Catalog *catalog.Client
	Log     *logrus.Logger
}

func NewMovieHandler(m *repository.MovieRepo, rv *repository.ReviewRepo, cat *catalog.Client, log *logrus.Logger) *MovieHandler {
	return &MovieHandler{Movies: m, Reviews: rv, Catalog: cat, Log: log}
}

type movieResp struct {
	ID         uint64  `json:"id"`
	UserID     *uint64 `json:"user_id"`
	ExternalID string  `json:"external_id"`
	Title      string  `json:"title"`
	Year       *int    `json:"year"`
	PosterURL  *string `json:"poster_url"`
	Overview   *string `json:"overview"`
	Genres     *string `json:"genres"`
}

func newMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:         m.ID,
		UserID:     m.UserID,
		ExternalID: m.ExternalID,
		Title:      m.Title,
		Year:       m.Year,
		PosterURL:  m.PosterURL,
		Overview:   m.Overview,
		Genres:     m.Genres,
	}
}

// externalIDParam validates the catalog id path parameter. Catalog ids are
// numeric; anything else is rejected before touching storage.
func externalIDParam(c echo.Context) (string, bool) {
	raw := c.Param("external_id")
	if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
		return "", false
	}
	return raw, true
}

// Attach adds a catalog movie to the caller's list. The operation is
// idempotent: when the caller already attached this catalog id, the
// existing row is returned without a second catalog fetch. A catalog
// failure aborts before any insert, so no partial row is ever visible.
func (h *MovieHandler) Attach(c echo.Context) error {
	externalID, ok := externalIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Movies.GetByExternalID(ctx, user.ID, externalID)
	if err == nil {
		return c.JSON(http.StatusOK, newMovieResp(existing))
	}
	if err != sql.ErrNoRows {
		h.Log.WithError(err).Error("movie lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}

	// The catalog fetch runs under the request context rather than the DB
	// timeout; the client carries its own upstream timeout.
	fetched, err := h.Catalog.GetMovie(c.Request().Context(), externalID)
	if err != nil {
		h.Log.WithError(err).WithField("external_id", externalID).Error("catalog fetch failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}

	// fresh timeout for the writes: the first one may have spent most of
	// its budget waiting on the catalog
	ctx, cancel = context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err = h.Movies.Create(ctx, model.Movie{
		UserID:     &user.ID,
		ExternalID: externalID,
		Title:      fetched.Title,
		Year:       fetched.Year,
		PosterURL:  fetched.PosterURL,
		Overview:   fetched.Overview,
		Genres:     fetched.Genres,
	})
	if err != nil && err != repository.ErrMovieExists {
		// ErrMovieExists means a concurrent attach won the race; the re-read
		// below returns that row, which is the idempotent outcome anyway.
		h.Log.WithError(err).Error("movie insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}

	created, err := h.Movies.GetByExternalID(ctx, user.ID, externalID)
	if err != nil {
		h.Log.WithError(err).Error("movie reload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}
	return c.JSON(http.StatusOK, newMovieResp(created))
}

// ListReviews returns the reviews of the caller's copy of a catalog movie,
// most recent first. A movie the caller never attached is a 404: listing
// is scoped the same way as attaching.
func (h *MovieHandler) ListReviews(c echo.Context) error {
	externalID, ok := externalIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByExternalID(ctx, user.ID, externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found for this user, add it first"})
		}
		h.Log.WithError(err).Error("movie lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reviews"})
	}

	reviews, err := h.Reviews.ListByMovie(ctx, movie.ID)
	if err != nil {
		h.Log.WithError(err).Error("review listing failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reviews"})
	}

	out := make([]reviewResp, 0, len(reviews))
	for _, v := range reviews {
		out = append(out, newReviewResp(v))
	}
	return c.JSON(http.StatusOK, out)
}
