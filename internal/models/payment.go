package models

import "time"

// Payment is one concrete dated occurrence of an Expense. Payments are
// created in a batch when the expense is created and never updated; they are
// hard-deleted together with their expense.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	ExpenseID uint      `gorm:"not null;index" json:"expense_id"`

	Expense *Expense `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
}
