package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"outlay/internal/models"
	"outlay/internal/recurrence"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, a unique email, and
// the user's finance account.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user (plus account) with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	account := &models.Account{UserID: user.ID}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	user.Account = account
	return user
}

// CreateTestIncome creates a one-off income on the account.
func CreateTestIncome(t *testing.T, db *gorm.DB, accountID uint, amount float64) *models.Income {
	t.Helper()

	income := &models.Income{
		AccountID:  accountID,
		Name:       fmt.Sprintf("Test Income %d", nextID()),
		Amount:     amount,
		Recurrence: recurrence.Once,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense with a single payment at the given date.
func CreateTestExpense(t *testing.T, db *gorm.DB, accountID uint, amount float64, paymentDate time.Time) *models.Expense {
	t.Helper()
	return CreateTestRecurringExpense(t, db, accountID, amount, paymentDate, recurrence.Once, 0)
}

// CreateTestRecurringExpense creates an expense and its expanded payment
// schedule, bypassing the service layer.
func CreateTestRecurringExpense(t *testing.T, db *gorm.DB, accountID uint, amount float64, anchor time.Time, unit recurrence.Unit, count int) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		AccountID:           accountID,
		Name:                fmt.Sprintf("Test Expense %d", nextID()),
		Amount:              amount,
		Category:            models.CategoryUncategorized,
		Recurrence:          unit,
		NumberOfRecurrences: count,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}

	dates, err := recurrence.Expand(anchor, unit, count)
	if err != nil {
		t.Fatalf("failed to expand test recurrence: %v", err)
	}
	for _, date := range dates {
		payment := models.Payment{ExpenseID: expense.ID, Date: date}
		if err := db.Create(&payment).Error; err != nil {
			t.Fatalf("failed to create test payment: %v", err)
		}
		expense.Payments = append(expense.Payments, payment)
	}
	return expense
}

// CreateTestModifier creates an amount modifier attached to the given target.
func CreateTestModifier(t *testing.T, db *gorm.DB, accountID uint, percentModifier models.PercentModifier, percent float64, targetType models.ModifierTarget, targetID uint) *models.AmountModifier {
	t.Helper()

	modifier := &models.AmountModifier{
		AccountID:       accountID,
		Name:            fmt.Sprintf("Test Modifier %d", nextID()),
		Percent:         percent,
		PercentModifier: percentModifier,
		TargetType:      targetType,
		TargetID:        targetID,
	}
	if err := db.Create(modifier).Error; err != nil {
		t.Fatalf("failed to create test modifier: %v", err)
	}
	return modifier
}
