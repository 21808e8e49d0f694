package models

import "outlay/internal/recurrence"

// Income represents money coming into an account, one-off or recurring.
type Income struct {
	Base
	AccountID           uint            `gorm:"not null;index" json:"account_id"`
	Name                string          `gorm:"size:255;not null" json:"name"`
	Amount              float64         `gorm:"not null" json:"amount"`
	Recurrence          recurrence.Unit `gorm:"size:16;not null;default:'once'" json:"recurrence"`
	NumberOfRecurrences int             `gorm:"default:0" json:"number_of_recurrences"`
}

// Recurring reports whether the income repeats at all.
func (i *Income) Recurring() bool {
	return i.NumberOfRecurrences != 0
}

// UntilCancelled reports the reserved open-ended recurrence sentinel.
// The API rejects negative counts on input, so this is false for anything
// created through the normal path.
func (i *Income) UntilCancelled() bool {
	return i.NumberOfRecurrences < 0
}
