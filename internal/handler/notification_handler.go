package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/middleware"
	"github.com/corptravel/travel-order-service/internal/repository"
)

type NotificationHandler struct {
	notifications repository.NotificationRepository
}

func NewNotificationHandler(notifications repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.notifications.FindByUser(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NotificationListResponse{
		Data:  notifications,
		Count: len(notifications),
	})
}
