package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/services"
)

// --- mock modifier service ---

type mockModifierService struct {
	createModifierFn     func(userID uint, name string, percent float64, percentModifier models.PercentModifier, incomeID, expenseID *uint) (*models.AmountModifier, error)
	getModifierByIDFn    func(userID, modifierID uint) (*services.ModifierValue, error)
	getTargetModifiersFn func(userID uint, targetType models.ModifierTarget, targetID uint) ([]services.ModifierValue, error)
	deleteModifierFn     func(userID, modifierID uint) error
}

func (m *mockModifierService) CreateModifier(userID uint, name string, percent float64, percentModifier models.PercentModifier, incomeID, expenseID *uint) (*models.AmountModifier, error) {
	if m.createModifierFn != nil {
		return m.createModifierFn(userID, name, percent, percentModifier, incomeID, expenseID)
	}
	return &models.AmountModifier{}, nil
}

func (m *mockModifierService) GetModifierByID(userID, modifierID uint) (*services.ModifierValue, error) {
	if m.getModifierByIDFn != nil {
		return m.getModifierByIDFn(userID, modifierID)
	}
	return &services.ModifierValue{Modifier: &models.AmountModifier{}}, nil
}

func (m *mockModifierService) GetTargetModifiers(userID uint, targetType models.ModifierTarget, targetID uint) ([]services.ModifierValue, error) {
	if m.getTargetModifiersFn != nil {
		return m.getTargetModifiersFn(userID, targetType, targetID)
	}
	return []services.ModifierValue{}, nil
}

func (m *mockModifierService) DeleteModifier(userID, modifierID uint) error {
	if m.deleteModifierFn != nil {
		return m.deleteModifierFn(userID, modifierID)
	}
	return nil
}

var _ services.ModifierServicer = (*mockModifierService)(nil)

func setupModifierRouter(handler *ModifierHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/modifiers", handler.CreateModifier)
	auth.GET("/modifiers", handler.GetModifiers)
	auth.GET("/modifiers/:id", handler.GetModifier)
	auth.DELETE("/modifiers/:id", handler.DeleteModifier)
	return r
}

func TestModifierHandler_CreateModifier(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		modSvc := &mockModifierService{
			createModifierFn: func(_ uint, name string, percent float64, percentModifier models.PercentModifier, incomeID, _ *uint) (*models.AmountModifier, error) {
				return &models.AmountModifier{
					Base:            models.Base{ID: 1},
					Name:            name,
					Percent:         percent,
					PercentModifier: percentModifier,
					TargetType:      models.TargetIncome,
					TargetID:        *incomeID,
				}, nil
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "POST", "/modifiers",
			`{"name":"Bonus","percent":0.1,"percent_modifier":"increase","income_id":2}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		modifier := result["modifier"].(map[string]interface{})
		if modifier["target_type"] != "income" {
			t.Errorf("expected target_type income, got %v", modifier["target_type"])
		}
	})

	t.Run("returns 400 when both targets set", func(t *testing.T) {
		modSvc := &mockModifierService{
			createModifierFn: func(_ uint, _ string, _ float64, _ models.PercentModifier, _, _ *uint) (*models.AmountModifier, error) {
				return nil, apperrors.ErrModifierTarget
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "POST", "/modifiers",
			`{"name":"Both","percent":0.1,"percent_modifier":"increase","income_id":2,"expense_id":3}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MODIFIER_TARGET")
	})

	t.Run("returns 400 on unknown direction", func(t *testing.T) {
		handler := NewModifierHandler(&mockModifierService{}, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "POST", "/modifiers",
			`{"name":"Odd","percent":0.1,"percent_modifier":"sideways","income_id":2}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when target missing", func(t *testing.T) {
		modSvc := &mockModifierService{
			createModifierFn: func(_ uint, _ string, _ float64, _ models.PercentModifier, _, _ *uint) (*models.AmountModifier, error) {
				return nil, apperrors.ErrIncomeNotFound
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "POST", "/modifiers",
			`{"name":"Ghost","percent":0.1,"percent_modifier":"increase","income_id":999}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestModifierHandler_GetModifiers(t *testing.T) {
	t.Run("returns 200 with values", func(t *testing.T) {
		modSvc := &mockModifierService{
			getTargetModifiersFn: func(_ uint, targetType models.ModifierTarget, targetID uint) ([]services.ModifierValue, error) {
				return []services.ModifierValue{
					{
						Modifier: &models.AmountModifier{Base: models.Base{ID: 1}, TargetType: targetType, TargetID: targetID},
						Value:    4950,
					},
				}, nil
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "GET", "/modifiers?target_type=income&target_id=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		values := result["modifiers"].([]interface{})
		if len(values) != 1 {
			t.Fatalf("expected 1 modifier, got %d", len(values))
		}
		first := values[0].(map[string]interface{})
		if first["value"].(float64) != 4950 {
			t.Errorf("expected value 4950, got %v", first["value"])
		}
	})

	t.Run("returns 400 on missing target_id", func(t *testing.T) {
		handler := NewModifierHandler(&mockModifierService{}, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "GET", "/modifiers?target_type=income", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestModifierHandler_GetModifier(t *testing.T) {
	t.Run("returns 200 with value", func(t *testing.T) {
		modSvc := &mockModifierService{
			getModifierByIDFn: func(_, modifierID uint) (*services.ModifierValue, error) {
				return &services.ModifierValue{
					Modifier: &models.AmountModifier{Base: models.Base{ID: modifierID}},
					Value:    160,
				}, nil
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "GET", "/modifiers/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["value"].(float64) != 160 {
			t.Errorf("expected value 160, got %v", result["value"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		modSvc := &mockModifierService{
			getModifierByIDFn: func(_, _ uint) (*services.ModifierValue, error) {
				return nil, apperrors.ErrModifierNotFound
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "GET", "/modifiers/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestModifierHandler_DeleteModifier(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID uint
		modSvc := &mockModifierService{
			deleteModifierFn: func(_, modifierID uint) error {
				deletedID = modifierID
				return nil
			},
		}
		handler := NewModifierHandler(modSvc, &mockAuditService{})
		r := setupModifierRouter(handler)

		rec := doRequest(r, "DELETE", "/modifiers/4", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != 4 {
			t.Errorf("expected modifier 4 deleted, got %d", deletedID)
		}
	})
}
