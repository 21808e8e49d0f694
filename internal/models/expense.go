package models

import "outlay/internal/recurrence"

// ExpenseCategory classifies an expense. The set is closed; anything the
// user does not classify lands in "uncategorized".
type ExpenseCategory string

const (
	CategoryHousing        ExpenseCategory = "housing"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryFood           ExpenseCategory = "food"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryInsurance      ExpenseCategory = "insurance"
	CategoryMedical        ExpenseCategory = "medical"
	CategorySavings        ExpenseCategory = "savings"
	CategoryPersonal       ExpenseCategory = "personal"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryMiscellaneous  ExpenseCategory = "miscellaneous"
	CategoryUncategorized  ExpenseCategory = "uncategorized"
)

// Valid reports whether c is a supported expense category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryHousing, CategoryTransportation, CategoryFood, CategoryUtilities,
		CategoryInsurance, CategoryMedical, CategorySavings, CategoryPersonal,
		CategoryEntertainment, CategoryMiscellaneous, CategoryUncategorized:
		return true
	}
	return false
}

// Expense represents money leaving an account. Creating an expense also
// creates its payment schedule: one payment at the anchor date plus one per
// recurrence step, all in the same database transaction.
type Expense struct {
	Base
	AccountID           uint            `gorm:"not null;index" json:"account_id"`
	Name                string          `gorm:"size:255;not null" json:"name"`
	Amount              float64         `gorm:"not null" json:"amount"`
	Category            ExpenseCategory `gorm:"size:32;not null;default:'uncategorized'" json:"category"`
	Recurrence          recurrence.Unit `gorm:"size:16;not null;default:'once'" json:"recurrence"`
	NumberOfRecurrences int             `gorm:"default:0" json:"number_of_recurrences"`

	// Payments are kept newest first, matching the default listing order.
	Payments []Payment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`
}

// Recurring reports whether the expense repeats at all.
func (e *Expense) Recurring() bool {
	return e.NumberOfRecurrences != 0
}

// UntilCancelled reports the reserved open-ended recurrence sentinel.
// The API rejects negative counts on input, so this is false for anything
// created through the normal path.
func (e *Expense) UntilCancelled() bool {
	return e.NumberOfRecurrences < 0
}
