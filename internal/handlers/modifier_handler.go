package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/services"
)

// ModifierHandler handles amount modifier requests.
type ModifierHandler struct {
	modifierService services.ModifierServicer
	auditService    services.AuditServicer
}

// NewModifierHandler creates a new ModifierHandler.
func NewModifierHandler(modifierService services.ModifierServicer, auditService services.AuditServicer) *ModifierHandler {
	return &ModifierHandler{modifierService: modifierService, auditService: auditService}
}

// CreateModifierRequest represents the request payload for creating a modifier.
// Exactly one of income_id and expense_id must be set.
type CreateModifierRequest struct {
	Name            string                 `json:"name" binding:"required,max=255"`
	Percent         float64                `json:"percent" binding:"gte=0"`
	PercentModifier models.PercentModifier `json:"percent_modifier" binding:"omitempty,percent_modifier"`
	IncomeID        *uint                  `json:"income_id"`
	ExpenseID       *uint                  `json:"expense_id"`
}

// CreateModifier handles the creation of a new amount modifier
// @Summary     Create an amount modifier
// @Description Create a percentage modifier attached to exactly one income or expense
// @Tags        modifiers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateModifierRequest true "Modifier details"
// @Success     201 {object} models.AmountModifier "Modifier created"
// @Failure     400 {object} ErrorResponse "Invalid input or ambiguous target"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /modifiers [post]
func (h *ModifierHandler) CreateModifier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	modifier, err := h.modifierService.CreateModifier(userID, req.Name, req.Percent, req.PercentModifier, req.IncomeID, req.ExpenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MODIFIER", "modifier", modifier.ID, c.ClientIP(),
		map[string]interface{}{"target_type": modifier.TargetType, "target_id": modifier.TargetID})

	c.JSON(http.StatusCreated, gin.H{"modifier": modifier})
}

// GetModifiers handles the retrieval of modifiers for one target
// @Summary     Get modifiers for a target
// @Description Get all modifiers attached to one income or expense, each with the adjusted amount
// @Tags        modifiers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       target_type query string true "Target type (income or expense)"
// @Param       target_id   query int    true "Target ID"
// @Success     200 {object} []services.ModifierValue "Modifiers with values"
// @Failure     400 {object} ErrorResponse "Invalid target"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /modifiers [get]
func (h *ModifierHandler) GetModifiers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetType := models.ModifierTarget(c.Query("target_type"))

	targetID, err := strconv.ParseUint(c.Query("target_id"), 10, 32)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid target_id"))
		return
	}

	values, err := h.modifierService.GetTargetModifiers(userID, targetType, uint(targetID))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiers": values})
}

// GetModifier handles the retrieval of a single modifier
// @Summary     Get a modifier
// @Description Get one modifier together with the adjusted amount of its target
// @Tags        modifiers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Modifier ID"
// @Success     200 {object} services.ModifierValue "Modifier with value"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Modifier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /modifiers/{id} [get]
func (h *ModifierHandler) GetModifier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	modifierID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	value, err := h.modifierService.GetModifierByID(userID, modifierID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, value)
}

// DeleteModifier handles the deletion of a modifier
// @Summary     Delete a modifier
// @Description Delete a modifier; the target income or expense is untouched
// @Tags        modifiers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Modifier ID"
// @Success     200 {object} MessageResponse "Modifier deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Modifier not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /modifiers/{id} [delete]
func (h *ModifierHandler) DeleteModifier(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	modifierID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.modifierService.DeleteModifier(userID, modifierID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MODIFIER", "modifier", modifierID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Modifier deleted successfully"})
}
