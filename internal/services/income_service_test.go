package services

import (
	"testing"

	"outlay/internal/models"
	"outlay/internal/pagination"
	"outlay/internal/recurrence"
	"outlay/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("one_off_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(user.ID, "Salary", 4500, "", 0)
		testutil.AssertNoError(t, err)

		if income.Recurrence != recurrence.Once {
			t.Errorf("expected once, got %s", income.Recurrence)
		}
		if income.Recurring() {
			t.Error("expected a one-off income")
		}
	})

	t.Run("recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(user.ID, "Salary", 4500, recurrence.Monthly, 12)
		testutil.AssertNoError(t, err)

		if !income.Recurring() {
			t.Error("expected a recurring income")
		}
		if income.UntilCancelled() {
			t.Error("expected a bounded recurrence")
		}
	})

	t.Run("invalid_input_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateIncome(user.ID, "", 4500, recurrence.Once, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateIncome(user.ID, "Salary", 0, recurrence.Once, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateIncome(user.ID, "Salary", 4500, recurrence.Unit("hourly"), 0)
		testutil.AssertAppError(t, err, "INVALID_RECURRENCE")

		_, err = svc.CreateIncome(user.ID, "Salary", 4500, recurrence.Monthly, -2)
		testutil.AssertAppError(t, err, "NEGATIVE_RECURRENCE")
	})
}

func TestGetAccountIncomes(t *testing.T) {
	t.Run("scoped_to_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user1.Account.ID, 4500)
		testutil.CreateTestIncome(t, db, user1.Account.ID, 300)
		testutil.CreateTestIncome(t, db, user2.Account.ID, 9000)

		result, err := svc.GetAccountIncomes(user1.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 incomes, got %d", result.TotalItems)
		}
	})
}

func TestDeleteIncome(t *testing.T) {
	t.Run("removes_income_and_modifiers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestIncome(t, db, user.Account.ID, 4500)
		testutil.CreateTestModifier(t, db, user.Account.ID, models.PercentIncrease, 0.1, models.TargetIncome, income.ID)

		testutil.AssertNoError(t, svc.DeleteIncome(user.ID, income.ID))

		_, err := svc.GetIncomeByID(user.ID, income.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")

		var modifiers int64
		db.Model(&models.AmountModifier{}).
			Where("target_type = ? AND target_id = ?", models.TargetIncome, income.ID).
			Count(&modifiers)
		if modifiers != 0 {
			t.Errorf("expected modifiers deleted, got %d", modifiers)
		}
	})

	t.Run("other_users_income_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestIncome(t, db, user1.Account.ID, 4500)

		err := svc.DeleteIncome(user2.ID, income.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}
