package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/api/metrics"
	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const msgCredentialsRequired = "Email and password are required"

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Signup creates a USER account and returns a session token for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      429   {object}  msgResponse
// @Failure      500   {object}  msgResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: msgCredentialsRequired})
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: err.Error()})
	}

	res, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Email already exists"})
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: msgCredentialsRequired})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		h.log.Error().Err(err).Msg("signup failed")
		return c.JSON(http.StatusInternalServerError, msgResponse{Msg: "Signup failed"})
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	return c.JSON(http.StatusOK, msgResponse{
		Msg:   "Signed up successfully!",
		Token: res.Token,
		User:  toUserPayload(res.Account),
	})
}

// Signin checks an email and password and returns a fresh session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      429   {object}  msgResponse
// @Failure      500   {object}  msgResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "invalid").Inc()
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: msgCredentialsRequired})
	}

	res, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("signin", "invalid").Inc()
			return c.JSON(http.StatusUnauthorized, msgResponse{Msg: "Invalid email or password"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "error").Inc()
		h.log.Error().Err(err).Msg("signin failed")
		return c.JSON(http.StatusInternalServerError, msgResponse{Msg: "Signin failed"})
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signin", "success").Inc()
	return c.JSON(http.StatusOK, msgResponse{
		Msg:   "Login successful",
		Token: res.Token,
		User:  toUserPayload(res.Account),
	})
}
