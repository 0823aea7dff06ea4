package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/middleware"
	"github.com/corptravel/travel-order-service/internal/models"
	"github.com/corptravel/travel-order-service/internal/repository"
	"github.com/corptravel/travel-order-service/internal/service"
	"github.com/corptravel/travel-order-service/internal/validation"
)

// --- Mock TravelOrderService ---

type mockTravelOrderService struct {
	listFn         func(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error)
	createFn       func(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error)
	getFn          func(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error)
	updateFn       func(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error)
	cancelFn       func(ctx context.Context, userID, orderID uint) error
	updateStatusFn func(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error)
}

func (m *mockTravelOrderService) List(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error) {
	return m.listFn(ctx, userID, filter)
}
func (m *mockTravelOrderService) Create(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error) {
	return m.createFn(ctx, userID, req)
}
func (m *mockTravelOrderService) Get(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error) {
	return m.getFn(ctx, userID, orderID)
}
func (m *mockTravelOrderService) Update(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error) {
	return m.updateFn(ctx, userID, orderID, req)
}
func (m *mockTravelOrderService) Cancel(ctx context.Context, userID, orderID uint) error {
	return m.cancelFn(ctx, userID, orderID)
}
func (m *mockTravelOrderService) UpdateStatus(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error) {
	return m.updateStatusFn(ctx, actorID, orderID, req)
}

func sampleOrder(id, ownerID uint, status models.TravelOrderStatus) *models.TravelOrder {
	return &models.TravelOrder{
		ID:            id,
		UserID:        ownerID,
		OrderID:       "ORDER-001",
		ApplicantName: "Maria Silva",
		Destination:   "Lisbon",
		DepartureDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC),
		Status:        status,
		CreatedAt:     time.Now(),
	}
}

func newTestContext(t *testing.T, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUserID(c, userID)
	return c, rec
}

// --- Create ---

func TestCreateTravelOrder_Handler_Success(t *testing.T) {
	svc := &mockTravelOrderService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error) {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, "ORDER-001", req.OrderID)
			return sampleOrder(1, userID, models.StatusRequested), nil
		},
	}

	body := `{"order_id":"ORDER-001","applicant_name":"Maria Silva","destination":"Lisbon","departure_date":"2026-12-01","return_date":"2026-12-05"}`
	c, rec := newTestContext(t, http.MethodPost, "/travel-orders", body, 1)

	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.TravelOrderDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusRequested, resp.Data.Status)
	assert.Equal(t, "2026-12-01", resp.Data.DepartureDate)
	assert.Equal(t, "2026-12-05", resp.Data.ReturnDate)
}

func TestCreateTravelOrder_Handler_ValidationError(t *testing.T) {
	svc := &mockTravelOrderService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error) {
			e := validation.NewErrors()
			e.Add("order_id", "The order ID field is required.")
			return nil, e
		},
	}

	c, _ := newTestContext(t, http.MethodPost, "/travel-orders", `{}`, 1)
	h := NewTravelOrderHandler(svc, validation.New())
	err := h.Create(c)

	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields, "order_id")
}

// --- Show ---

func TestShowTravelOrder_Handler_Success(t *testing.T) {
	svc := &mockTravelOrderService{
		getFn: func(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error) {
			return sampleOrder(orderID, userID, models.StatusRequested), nil
		},
	}

	c, rec := newTestContext(t, http.MethodGet, "/travel-orders/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.Show(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShowTravelOrder_Handler_Forbidden(t *testing.T) {
	svc := &mockTravelOrderService{
		getFn: func(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error) {
			return nil, service.ErrNotOwner
		},
	}

	c, _ := newTestContext(t, http.MethodGet, "/travel-orders/1", "", 2)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	err := h.Show(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestShowTravelOrder_Handler_NotFound(t *testing.T) {
	svc := &mockTravelOrderService{
		getFn: func(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error) {
			return nil, service.ErrOrderNotFound
		},
	}

	c, _ := newTestContext(t, http.MethodGet, "/travel-orders/999", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewTravelOrderHandler(svc, validation.New())
	err := h.Show(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestShowTravelOrder_Handler_InvalidID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/travel-orders/abc", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewTravelOrderHandler(&mockTravelOrderService{}, validation.New())
	err := h.Show(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- Update ---

func TestUpdateTravelOrder_Handler_FrozenOrder(t *testing.T) {
	svc := &mockTravelOrderService{
		updateFn: func(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error) {
			return nil, &service.BusinessRuleError{Message: "Cannot update a travel order with status approved."}
		},
	}

	c, _ := newTestContext(t, http.MethodPut, "/travel-orders/1", `{"destination":"Porto"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	err := h.Update(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	assert.Contains(t, he.Message, "approved")
}

func TestUpdateTravelOrder_Handler_Success(t *testing.T) {
	svc := &mockTravelOrderService{
		updateFn: func(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error) {
			order := sampleOrder(orderID, userID, models.StatusRequested)
			if req.Destination != nil {
				order.Destination = *req.Destination
			}
			return order, nil
		},
	}

	c, rec := newTestContext(t, http.MethodPut, "/travel-orders/1", `{"destination":"Porto"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TravelOrderDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Porto", resp.Data.Destination)
}

// --- Cancel ---

func TestCancelTravelOrder_Handler_Success(t *testing.T) {
	svc := &mockTravelOrderService{
		cancelFn: func(ctx context.Context, userID, orderID uint) error {
			return nil
		},
	}

	c, rec := newTestContext(t, http.MethodDelete, "/travel-orders/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled successfully")
}

func TestCancelTravelOrder_Handler_ApprovedRejected(t *testing.T) {
	svc := &mockTravelOrderService{
		cancelFn: func(ctx context.Context, userID, orderID uint) error {
			return &service.BusinessRuleError{Message: "Cannot cancel an approved travel order."}
		},
	}

	c, _ := newTestContext(t, http.MethodDelete, "/travel-orders/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	err := h.Cancel(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

// --- UpdateStatus ---

func TestUpdateStatus_Handler_SelfTransitionForbidden(t *testing.T) {
	svc := &mockTravelOrderService{
		updateStatusFn: func(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error) {
			return nil, service.ErrSelfStatusChange
		},
	}

	c, _ := newTestContext(t, http.MethodPatch, "/travel-orders/1/status", `{"status":"approved"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	err := h.UpdateStatus(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Contains(t, he.Message, "your own travel order")
}

func TestUpdateStatus_Handler_Approve(t *testing.T) {
	svc := &mockTravelOrderService{
		updateStatusFn: func(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error) {
			assert.Equal(t, uint(2), actorID)
			assert.Equal(t, "approved", req.Status)
			return sampleOrder(orderID, 1, models.StatusApproved), nil
		},
	}

	c, rec := newTestContext(t, http.MethodPatch, "/travel-orders/1/status", `{"status":"approved"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TravelOrderDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusApproved, resp.Data.Status)
}

// --- List ---

func TestListTravelOrders_Handler_Success(t *testing.T) {
	svc := &mockTravelOrderService{
		listFn: func(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error) {
			return []models.TravelOrder{
				*sampleOrder(1, userID, models.StatusRequested),
				*sampleOrder(2, userID, models.StatusApproved),
			}, nil
		},
	}

	c, rec := newTestContext(t, http.MethodGet, "/travel-orders", "", 1)
	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TravelOrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Count)
}

func TestListTravelOrders_Handler_Filters(t *testing.T) {
	var gotFilter repository.ListFilter
	svc := &mockTravelOrderService{
		listFn: func(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error) {
			gotFilter = filter
			return []models.TravelOrder{}, nil
		},
	}

	c, _ := newTestContext(t, http.MethodGet, "/travel-orders?status=approved&destination=Lis&start_date=2026-01-01&end_date=2026-01-31", "", 1)
	h := NewTravelOrderHandler(svc, validation.New())
	require.NoError(t, h.List(c))

	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, models.StatusApproved, *gotFilter.Status)
	assert.Equal(t, "Lis", gotFilter.Destination)
	require.NotNil(t, gotFilter.StartDate)
	require.NotNil(t, gotFilter.EndDate)
}

func TestListTravelOrders_Handler_HalfOpenRange(t *testing.T) {
	h := NewTravelOrderHandler(&mockTravelOrderService{}, validation.New())

	c, _ := newTestContext(t, http.MethodGet, "/travel-orders?start_date=2026-01-01", "", 1)
	err := h.List(c)

	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields, "start_date")
}
