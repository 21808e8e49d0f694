package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// GetAccountByUserID retrieves the user's finance account. Accounts are
// created during registration and map 1:1 to users, so a miss here means
// the caller is not a registered user.
func (s *accountService) GetAccountByUserID(userID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
