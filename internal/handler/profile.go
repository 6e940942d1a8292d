package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/middleware"
	"github.com/Gakshith/finalproject/internal/repository"
	"github.com/Gakshith/finalproject/internal/utils"
)

// updateProfileReq carries a partial profile update: every field is
// optional and an omitted field keeps its prior value. Distinguishing
// "absent" from "set to empty" is why the fields are pointers.
type updateProfileReq struct {
	Username       *string `json:"username"`
	FullName       *string `json:"full_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

type updateProfileResp struct {
	Message     string      `json:"message"`
	User        profileResp `json:"user"`
	AccessToken *string     `json:"access_token"`
	TokenType   *string     `json:"token_type"`
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, newProfileResp(middleware.CurrentUser(c)))
}

// UpdateMe applies a partial profile update. When the username actually
// changes, the response additionally carries a freshly issued token bound
// to the new subject; the old token stays valid until its natural expiry.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	current := middleware.CurrentUser(c)

	username := current.Username
	fullName := current.FullName
	bio := current.Bio
	profilePicture := current.ProfilePicture

	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if req.FullName != nil {
		fullName = req.FullName
	}
	if req.Bio != nil {
		bio = req.Bio
	}
	if req.ProfilePicture != nil {
		profilePicture = req.ProfilePicture
	}

	usernameChanged := username != current.Username

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if usernameChanged {
		if username == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username cannot be empty"})
		}
		taken, err := h.Users.UsernameTaken(ctx, username, current.ID)
		if err != nil {
			h.Log.WithError(err).Error("rename lookup failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
		}
		if taken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already taken"})
		}
	}

	if err := h.Users.UpdateProfile(ctx, current.ID, username, fullName, bio, profilePicture); err != nil {
		if err == repository.ErrUsernameTaken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already taken"})
		}
		h.Log.WithError(err).Error("profile update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	updated, err := h.Users.GetByID(ctx, current.ID)
	if err != nil {
		h.Log.WithError(err).Error("profile reload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	resp := updateProfileResp{
		Message: "profile updated successfully",
		User:    newProfileResp(updated),
	}
	if usernameChanged {
		access, err := utils.NewAccessToken(h.Cfg.JWTSecret, username, h.Cfg.AccessTTLMin)
		if err != nil {
			h.Log.WithError(err).Error("token issue failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
		}
		tokenType := "bearer"
		resp.AccessToken = &access.Token
		resp.TokenType = &tokenType
	}
	return c.JSON(http.StatusOK, resp)
}
