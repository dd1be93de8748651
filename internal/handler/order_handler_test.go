package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"print-kart/internal/model"
	"print-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, userID int64, req *model.PlaceOrderRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) RaiseTicket(ctx context.Context, userID int64, req *model.RaiseTicketRequest, images []service.Upload) (*model.Complaint, error) {
	args := m.Called(ctx, userID, req, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Complaint), args.Error(1)
}

func TestOrderHandler_Store(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	placed := &model.Order{ID: orderID, OrderNumber: "ORD-20260830-ABCDEF12", Status: model.OrderStatusPending}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"items":[{"product_id":1,"quantity":2}],"shipping_address":"12 MG Road","shipping_city":"Bengaluru","shipping_state":"Karnataka","shipping_zip":"560001","phone":"9876543210"}`,
			mockReturn:     placed,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Validation failure",
			body:           `{"items":[]}`,
			mockError:      model.NewValidationError().Add("items", "Order must contain at least one item"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectService:  true,
		},
		{
			name:           "Insufficient stock",
			body:           `{"items":[{"product_id":1,"quantity":99}],"shipping_address":"12 MG Road","shipping_city":"Bengaluru","shipping_state":"Karnataka","shipping_zip":"560001","phone":"9876543210"}`,
			mockError:      model.NewInsufficientStockError("Classic Cotton Tee", 2),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Malformed body",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("Place", mock.Anything, mock.Anything, mock.AnythingOfType("*model.PlaceOrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(mockService, logger)
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Store(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			switch tt.expectedStatus {
			case http.StatusCreated:
				assert.True(t, resp.Success)
			case http.StatusUnprocessableEntity:
				assert.False(t, resp.Success)
				assert.Equal(t, "Validation failed", resp.Message)
				assert.Contains(t, resp.Errors, "items")
			case http.StatusBadRequest:
				assert.False(t, resp.Success)
			}

			if !tt.expectService {
				mockService.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_Show(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("Get", mock.Anything, mock.Anything, orderID).
			Return(&model.Order{ID: orderID, OrderNumber: "ORD-20260830-ABCDEF12"}, nil)

		h := NewOrderHandler(mockService, logger)
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
		req.SetPathValue("id", orderID.String())
		rec := httptest.NewRecorder()

		h.Show(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()

		h.Show(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("Get", mock.Anything, mock.Anything, orderID).
			Return(nil, model.NewNotFoundError("Order"))

		h := NewOrderHandler(mockService, logger)
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
		req.SetPathValue("id", orderID.String())
		rec := httptest.NewRecorder()

		h.Show(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Order not found", resp.Message)
	})
}

func TestOrderHandler_RaiseTicket_JSON(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	mockService.On("RaiseTicket", mock.Anything, mock.Anything, mock.MatchedBy(func(req *model.RaiseTicketRequest) bool {
		return req.OrderID == orderID && req.ProductID == 1 && req.IssueType == "damaged"
	}), mock.Anything).Return(&model.Complaint{ID: 5, Status: model.ComplaintStatusPending}, nil)

	h := NewOrderHandler(mockService, logger)
	body := `{"order_id":"` + orderID.String() + `","product_id":1,"issue_type":"damaged","description":"Scratched print"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders/raise-ticket", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.RaiseTicket(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}
