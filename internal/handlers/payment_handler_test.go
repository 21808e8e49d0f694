package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/pagination"
	"outlay/internal/services"
)

// --- mock payment service ---

type mockPaymentService struct {
	getAccountPaymentsFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	getPaymentByIDFn     func(userID, paymentID uint) (*models.Payment, error)
	upcomingPaymentsFn   func(userID uint, now time.Time, thisMonthOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
}

func (m *mockPaymentService) GetAccountPayments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	if m.getAccountPaymentsFn != nil {
		return m.getAccountPaymentsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Payment{}, 1, 5, 0)
	return &resp, nil
}

func (m *mockPaymentService) GetPaymentByID(userID, paymentID uint) (*models.Payment, error) {
	if m.getPaymentByIDFn != nil {
		return m.getPaymentByIDFn(userID, paymentID)
	}
	return &models.Payment{}, nil
}

func (m *mockPaymentService) UpcomingPayments(userID uint, now time.Time, thisMonthOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	if m.upcomingPaymentsFn != nil {
		return m.upcomingPaymentsFn(userID, now, thisMonthOnly, page)
	}
	resp := pagination.NewPageResponse([]models.Payment{}, 1, 5, 0)
	return &resp, nil
}

var _ services.PaymentServicer = (*mockPaymentService)(nil)

func setupPaymentRouter(handler *PaymentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/payments", handler.GetPayments)
	auth.GET("/payments/upcoming", handler.GetUpcomingPayments)
	auth.GET("/payments/:id", handler.GetPayment)
	return r
}

func TestPaymentHandler_GetPayments(t *testing.T) {
	t.Run("returns 200 with payments", func(t *testing.T) {
		paySvc := &mockPaymentService{
			getAccountPaymentsFn: func(_ uint, _ pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
				resp := pagination.NewPageResponse([]models.Payment{
					{ID: 1, Date: time.Date(2022, time.April, 30, 0, 0, 0, 0, time.UTC), ExpenseID: 1},
				}, 1, 5, 1)
				return &resp, nil
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		rec := doRequest(r, "GET", "/payments", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected 1 payment, got %v", result["total_items"])
		}
	})
}

func TestPaymentHandler_GetUpcomingPayments(t *testing.T) {
	t.Run("defaults to all upcoming", func(t *testing.T) {
		var gotThisMonth bool
		paySvc := &mockPaymentService{
			upcomingPaymentsFn: func(_ uint, _ time.Time, thisMonthOnly bool, _ pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
				gotThisMonth = thisMonthOnly
				resp := pagination.NewPageResponse([]models.Payment{}, 1, 5, 0)
				return &resp, nil
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		rec := doRequest(r, "GET", "/payments/upcoming", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotThisMonth {
			t.Error("expected thisMonthOnly to default to false")
		}
	})

	t.Run("honors this_month flag", func(t *testing.T) {
		var gotThisMonth bool
		paySvc := &mockPaymentService{
			upcomingPaymentsFn: func(_ uint, _ time.Time, thisMonthOnly bool, _ pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
				gotThisMonth = thisMonthOnly
				resp := pagination.NewPageResponse([]models.Payment{}, 1, 5, 0)
				return &resp, nil
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		rec := doRequest(r, "GET", "/payments/upcoming?this_month=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotThisMonth {
			t.Error("expected thisMonthOnly to be true")
		}
	})

	t.Run("passes current time", func(t *testing.T) {
		var gotNow time.Time
		paySvc := &mockPaymentService{
			upcomingPaymentsFn: func(_ uint, now time.Time, _ bool, _ pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
				gotNow = now
				resp := pagination.NewPageResponse([]models.Payment{}, 1, 5, 0)
				return &resp, nil
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		before := time.Now()
		doRequest(r, "GET", "/payments/upcoming", "")

		if gotNow.Before(before) || gotNow.After(time.Now()) {
			t.Errorf("expected now near request time, got %v", gotNow)
		}
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	t.Run("returns 200 with payment", func(t *testing.T) {
		paySvc := &mockPaymentService{
			getPaymentByIDFn: func(_, paymentID uint) (*models.Payment, error) {
				return &models.Payment{ID: paymentID, ExpenseID: 3}, nil
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		rec := doRequest(r, "GET", "/payments/9", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		payment := result["payment"].(map[string]interface{})
		if payment["expense_id"].(float64) != 3 {
			t.Errorf("expected expense_id 3, got %v", payment["expense_id"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		paySvc := &mockPaymentService{
			getPaymentByIDFn: func(_, _ uint) (*models.Payment, error) {
				return nil, apperrors.ErrPaymentNotFound
			},
		}
		handler := NewPaymentHandler(paySvc)
		r := setupPaymentRouter(handler)

		rec := doRequest(r, "GET", "/payments/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
