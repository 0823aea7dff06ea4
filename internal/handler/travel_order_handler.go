package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/middleware"
	"github.com/corptravel/travel-order-service/internal/service"
	"github.com/corptravel/travel-order-service/internal/validation"
)

type TravelOrderHandler struct {
	svc      service.TravelOrderService
	validate *validation.Validator
}

func NewTravelOrderHandler(svc service.TravelOrderService, validate *validation.Validator) *TravelOrderHandler {
	return &TravelOrderHandler{svc: svc, validate: validate}
}

func (h *TravelOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Show)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Cancel)
	g.PATCH("/:id/status", h.UpdateStatus)
}

func (h *TravelOrderHandler) List(c echo.Context) error {
	filter, verrs := h.validate.ListQuery(
		c.QueryParam("status"),
		c.QueryParam("destination"),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
	)
	if verrs != nil {
		return verrs
	}

	orders, err := h.svc.List(c.Request().Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		return serviceError(err)
	}

	resp := make([]dto.TravelOrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dto.ToTravelOrderResponse(&o)
	}
	return c.JSON(http.StatusOK, dto.TravelOrderListResponse{Data: resp, Count: len(resp)})
}

func (h *TravelOrderHandler) Create(c echo.Context) error {
	var req dto.CreateTravelOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.Create(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, dto.TravelOrderDataResponse{
		Message: "Travel order created successfully.",
		Data:    dto.ToTravelOrderResponse(order),
	})
}

func (h *TravelOrderHandler) Show(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}

	order, err := h.svc.Get(c.Request().Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.TravelOrderDataResponse{Data: dto.ToTravelOrderResponse(order)})
}

func (h *TravelOrderHandler) Update(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTravelOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.Update(c.Request().Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.TravelOrderDataResponse{
		Message: "Travel order updated successfully.",
		Data:    dto.ToTravelOrderResponse(order),
	})
}

func (h *TravelOrderHandler) Cancel(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Cancel(c.Request().Context(), middleware.CurrentUserID(c), id); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Travel order cancelled successfully."})
}

func (h *TravelOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTravelOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.UpdateStatus(c.Request().Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.TravelOrderDataResponse{
		Message: "Travel order status updated successfully.",
		Data:    dto.ToTravelOrderResponse(order),
	})
}

func orderID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid travel order id")
	}
	return uint(id), nil
}

// serviceError maps service-level failures onto HTTP outcomes. Validation
// errors pass through untouched; the central error handler renders them.
func serviceError(err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return err
	}

	var rule *service.BusinessRuleError
	if errors.As(err, &rule) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, rule.Message)
	}

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Travel order not found.")
	case errors.Is(err, service.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this travel order.")
	case errors.Is(err, service.ErrSelfStatusChange):
		return echo.NewHTTPError(http.StatusForbidden, "You cannot change the status of your own travel order.")
	default:
		return err
	}
}
