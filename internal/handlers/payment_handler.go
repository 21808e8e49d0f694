package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/pagination"
	"outlay/internal/services"
)

// PaymentHandler handles payment-related requests. Payments are read-only
// over the API: they are created and deleted through their expense.
type PaymentHandler struct {
	paymentService services.PaymentServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// GetPayments handles the retrieval of the account's payments
// @Summary     Get payments
// @Description Get a paginated list of the account's payments across all expenses, newest first
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 5, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Paginated payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.GetAccountPayments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUpcomingPayments handles the retrieval of payments not yet due
// @Summary     Get upcoming payments
// @Description Get a paginated list of payments strictly after now, optionally only those left in the current month
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       this_month query bool false "Restrict to the rest of the current month"
// @Param       page       query int  false "Page number (default 1)"
// @Param       page_size  query int  false "Items per page (default 5, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Paginated payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/upcoming [get]
func (h *PaymentHandler) GetUpcomingPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	thisMonthOnly := c.Query("this_month") == "true"

	result, err := h.paymentService.UpcomingPayments(userID, time.Now(), thisMonthOnly, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPayment handles the retrieval of a single payment
// @Summary     Get a payment
// @Description Get one payment with its expense
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment ID"
// @Success     200 {object} models.Payment "Payment"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.GetPaymentByID(userID, paymentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
