package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

// AuthHandler fronts the backend's login, signup, refresh and profile
// endpoints. Tokens are issued by the backend; nothing is stored here.
type AuthHandler struct {
	Upstream
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.ValidateLogin(req); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	tokens, err := api.Login(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateSignup(req); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	tokens, err := api.Signup(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tokens)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req model.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken is required"})
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	tokens, err := api.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	api, ctx, cancel := h.api(c)
	defer cancel()
	u, err := api.Me(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateMe saves the profile form. Username and role cannot be changed here.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req model.User
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(req.Email) == "" {
		return respondError(c, validation.ValidationErrors{{Field: "email", Message: "email is required"}})
	}
	req.Role = ""
	api, ctx, cancel := h.api(c)
	defer cancel()
	u, err := api.UpdateProfile(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
