package models

// PercentModifier is the direction of a percentage adjustment.
type PercentModifier string

const (
	PercentIncrease PercentModifier = "increase"
	PercentDecrease PercentModifier = "decrease"
	PercentNone     PercentModifier = "none"
)

// Valid reports whether p is a supported percent modifier.
func (p PercentModifier) Valid() bool {
	switch p {
	case PercentIncrease, PercentDecrease, PercentNone:
		return true
	}
	return false
}

// ModifierTarget tags which kind of record an AmountModifier adjusts.
type ModifierTarget string

const (
	TargetIncome  ModifierTarget = "income"
	TargetExpense ModifierTarget = "expense"
)

// Valid reports whether t is a supported modifier target.
func (t ModifierTarget) Valid() bool {
	return t == TargetIncome || t == TargetExpense
}

// AmountModifier applies a percentage adjustment to the amount of exactly
// one income or one expense. The target is a tagged reference (type + id)
// rather than two nullable foreign keys, so "both set" and "neither set"
// are unrepresentable once validated.
type AmountModifier struct {
	Base
	AccountID       uint            `gorm:"not null;index" json:"account_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Percent         float64         `gorm:"not null" json:"percent"`
	PercentModifier PercentModifier `gorm:"size:16;not null;default:'none'" json:"percent_modifier"`
	TargetType      ModifierTarget  `gorm:"size:16;not null;index:idx_modifier_target" json:"target_type"`
	TargetID        uint            `gorm:"not null;index:idx_modifier_target" json:"target_id"`
}

// Value returns the target amount with the modifier applied.
// Decrease multiplies by the raw percent, not by (1 - percent).
func (m *AmountModifier) Value(amount float64) float64 {
	switch m.PercentModifier {
	case PercentIncrease:
		return amount * (1 + m.Percent)
	case PercentDecrease:
		return amount * m.Percent
	default:
		return amount
	}
}
