package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/handler"
	"github.com/Gakshith/finalproject/internal/middleware"
	"github.com/Gakshith/finalproject/internal/repository"
)

// Register wires every route of the API onto the provided Echo instance.
// Signup and login stay open; everything else runs behind the Auth
// middleware, which rejects the request before any handler executes.
func Register(e *echo.Echo, a *handler.AuthHandler, m *handler.MovieHandler, rv *handler.ReviewHandler, jwtSecret string, users *repository.UserRepo) {
	e.GET("/healthz", handler.Health)

	e.POST("/signup", a.Signup)
	e.POST("/login", a.Login)

	auth := e.Group("")
	auth.Use(middleware.Auth(jwtSecret, users))

	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)

	auth.POST("/movies/:external_id", m.Attach)
	auth.GET("/movies/:external_id/reviews", m.ListReviews)

	auth.POST("/reviews", rv.Create)
	auth.PUT("/reviews/:movie_id", rv.Update)
	auth.DELETE("/reviews/:movie_id", rv.Delete)
}
