package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestUpcomingPaymentsFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "user@example.com", "password123")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextYear := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	app.createExpense(t, token, fmt.Sprintf(`{"name":"Rent","amount":900,"payment_date":%q}`, yesterday))
	app.createExpense(t, token, fmt.Sprintf(`{"name":"Gym","amount":45,"payment_date":%q}`, tomorrow))
	app.createExpense(t, token, fmt.Sprintf(`{"name":"Insurance","amount":300,"payment_date":%q}`, nextYear))

	rec := app.request("GET", "/api/v1/payments/upcoming", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected 2 upcoming payments, got %v", result["total_items"])
	}

	// this_month cuts off anything past the current month.
	rec = app.request("GET", "/api/v1/payments/upcoming?this_month=true", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	got := result["total_items"].(float64)
	if got != 0 && got != 1 {
		t.Errorf("expected at most 1 payment this month, got %v", got)
	}
}

func TestGetPaymentDetail(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "user@example.com", "password123")

	app.createExpense(t, token, `{"name":"Pizza","amount":220,"payment_date":"2022-04-28"}`)

	rec := app.request("GET", "/api/v1/payments", "", token)
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(data))
	}
	paymentID := data[0].(map[string]interface{})["id"].(float64)

	rec = app.request("GET", fmt.Sprintf("/api/v1/payments/%.0f", paymentID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	payment := result["payment"].(map[string]interface{})
	expense := payment["expense"].(map[string]interface{})
	if expense["name"] != "Pizza" {
		t.Errorf("expected payment to carry its expense, got %v", expense["name"])
	}

	// Payments of other accounts are not reachable.
	token2, _, _ := app.registerUser(t, "other@example.com", "password123")
	rec = app.request("GET", fmt.Sprintf("/api/v1/payments/%.0f", paymentID), "", token2)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for other user's payment, got %d", rec.Code)
	}
}

func TestModifierFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "user@example.com", "password123")

	rec := app.request("POST", "/api/v1/incomes",
		`{"name":"Salary","amount":4500,"recurrence":"monthly","number_of_recurrences":12}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	incomeID := result["income"].(map[string]interface{})["id"].(float64)

	body := fmt.Sprintf(`{"name":"Bonus","percent":10,"percent_modifier":"increase","income_id":%.0f}`, incomeID)
	rec = app.request("POST", "/api/v1/modifiers", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create modifier failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	modifierID := result["modifier"].(map[string]interface{})["id"].(float64)

	rec = app.request("GET", fmt.Sprintf("/api/v1/modifiers/%.0f", modifierID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	if result["value"].(float64) != 4950 {
		t.Errorf("expected modified value 4950, got %v", result["value"])
	}

	// Listing by target returns the modifier.
	rec = app.request("GET", fmt.Sprintf("/api/v1/modifiers?target_type=income&target_id=%.0f", incomeID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	modifiers := result["modifiers"].([]interface{})
	if len(modifiers) != 1 {
		t.Errorf("expected 1 modifier for target, got %d", len(modifiers))
	}

	// Deleting the modifier leaves the income intact.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/modifiers/%.0f", modifierID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete modifier failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", fmt.Sprintf("/api/v1/incomes/%.0f", incomeID), "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected income to survive modifier delete, got %d", rec.Code)
	}
}

func TestModifierRejectsAmbiguousTarget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "user@example.com", "password123")

	rec := app.request("POST", "/api/v1/modifiers",
		`{"name":"Bonus","percent":10,"percent_modifier":"increase"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a target, got %d", rec.Code)
	}
}
