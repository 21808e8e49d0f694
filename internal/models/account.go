package models

// Account is a single user's finance workspace. It owns all incomes and
// expenses the user records; nothing financial hangs off the User directly.
type Account struct {
	Base
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	// Relationships
	Incomes  []Income  `gorm:"foreignKey:AccountID" json:"incomes,omitempty"`
	Expenses []Expense `gorm:"foreignKey:AccountID" json:"expenses,omitempty"`
}
