package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Gakshith/finalproject/internal/middleware"
	"github.com/Gakshith/finalproject/internal/model"
	"github.com/Gakshith/finalproject/internal/repository"
)

// ReviewHandler serves review creation, update and deletion. Every
// operation is keyed by the caller plus a movie id; a movie the caller
// does not own looks exactly like a movie that does not exist.
type ReviewHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
	Log     *logrus.Logger
}

func NewReviewHandler(m *repository.MovieRepo, rv *repository.ReviewRepo, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Movies: m, Reviews: rv, Log: log}
}

// ----- DTOs -----

type createReviewReq struct {
	MovieID uint64  `json:"movie_id"`
	Rating  float64 `json:"rating"`
	Comment *string `json:"comment"`
}

func (r createReviewReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID, validation.Required),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
	)
}

type updateReviewReq struct {
	Rating  float64 `json:"rating"`
	Comment *string `json:"comment"`
}

func (r updateReviewReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
	)
}

type reviewResp struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	MovieID   uint64    `json:"movie_id"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResp(v model.Review) reviewResp {
	return reviewResp{
		ID:        v.ID,
		UserID:    v.UserID,
		MovieID:   v.MovieID,
		Rating:    v.Rating,
		Comment:   v.Comment,
		Likes:     v.Likes,
		CreatedAt: v.CreatedAt,
	}
}

func movieIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("movie_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Create posts the caller's review for a movie on their list. The target
// movie must belong to the caller, and only one review per (user, movie)
// pair may exist; the unique constraint backs the existence check when
// two submissions race.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetOwnedByID(ctx, user.ID, req.MovieID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found, add the movie first"})
		}
		h.Log.WithError(err).Error("movie lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add review"})
	}

	if _, err := h.Reviews.GetByUserAndMovie(ctx, user.ID, req.MovieID); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already reviewed this movie"})
	} else if err != sql.ErrNoRows {
		h.Log.WithError(err).Error("review lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add review"})
	}

	if _, err := h.Reviews.Create(ctx, user.ID, req.MovieID, req.Rating, req.Comment); err != nil {
		if err == repository.ErrReviewExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already reviewed this movie"})
		}
		h.Log.WithError(err).Error("review insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add review"})
	}

	// Re-read instead of echoing the payload, to pick up server-assigned
	// fields (id, likes, created_at).
	created, err := h.Reviews.GetByUserAndMovie(ctx, user.ID, req.MovieID)
	if err != nil {
		h.Log.WithError(err).Error("review reload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add review"})
	}
	return c.JSON(http.StatusOK, newReviewResp(created))
}

// Update overwrites the rating and comment of the caller's review for a
// movie. Likes and the movie relation stay untouched.
func (h *ReviewHandler) Update(c echo.Context) error {
	movieID, ok := movieIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Reviews.GetByUserAndMovie(ctx, user.ID, movieID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "you have not reviewed this movie yet"})
		}
		h.Log.WithError(err).Error("review lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}

	if err := h.Reviews.Update(ctx, existing.ID, req.Rating, req.Comment); err != nil {
		h.Log.WithError(err).Error("review update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}

	updated, err := h.Reviews.GetByUserAndMovie(ctx, user.ID, movieID)
	if err != nil {
		h.Log.WithError(err).Error("review reload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	return c.JSON(http.StatusOK, newReviewResp(updated))
}

// Delete removes the caller's review for a movie.
func (h *ReviewHandler) Delete(c echo.Context) error {
	movieID, ok := movieIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Reviews.GetByUserAndMovie(ctx, user.ID, movieID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "you have not reviewed this movie yet"})
		}
		h.Log.WithError(err).Error("review lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}

	if err := h.Reviews.Delete(ctx, existing.ID); err != nil {
		h.Log.WithError(err).Error("review delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review deleted successfully"})
}
