package middleware

// identity.go exposes the authenticated identity stored by Auth to the
// handler layer, so handlers never reach into the raw context key.

import (
	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/model"
)

// CurrentUser returns the user resolved by the Auth middleware. It must
// only be called from handlers registered behind Auth; on any other route
// the zero User is returned.
func CurrentUser(c echo.Context) model.User {
	u, _ := c.Get(userKey).(model.User)
	return u
}
