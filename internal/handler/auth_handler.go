package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/middleware"
	"github.com/corptravel/travel-order-service/internal/service"
	"github.com/corptravel/travel-order-service/pkg/token"
)

type AuthHandler struct {
	svc    service.AuthService
	tokens *token.Manager
}

func NewAuthHandler(svc service.AuthService, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

// RegisterPublicRoutes wires the unauthenticated endpoints.
func (h *AuthHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
}

// RegisterProtectedRoutes wires the endpoints behind the JWT middleware.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/logout", h.Logout)
	g.POST("/refresh", h.Refresh)
	g.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}

	signed, err := h.tokens.Generate(user.ID)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	return c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:     "User registered successfully.",
		User:        dto.ToUserResponse(user),
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials.")
		}
		return serviceError(err)
	}

	signed, err := h.tokens.Generate(user.ID)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Message:     "Login successful.",
		User:        dto.ToUserResponse(user),
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.MeResponse{User: dto.ToUserResponse(user)})
}

// Logout is stateless: the token simply stops being presented by the client.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful."})
}

// Refresh exchanges a still-valid token for a fresh one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	signed, err := h.tokens.Generate(middleware.CurrentUserID(c))
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}
