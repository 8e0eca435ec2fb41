package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "moolah/internal/errors"
	"moolah/internal/models"
	"moolah/internal/pagination"
	"moolah/internal/uuid"
	"moolah/internal/validator"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB

	// requireCategory makes categoryId mandatory on create and forbids
	// clearing it. The reference deployments disagreed, so it's a toggle.
	requireCategory bool
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, requireCategory bool) TransactionServicer {
	return &transactionService{db: db, requireCategory: requireCategory}
}

// Create creates a new transaction.
func (s *transactionService) Create(userID string, params CreateTransactionParams) (*models.Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if s.requireCategory && params.CategoryID == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "categoryId is required")
	}
	if params.CategoryID != nil {
		if err := s.checkCategory(userID, *params.CategoryID, params.Type); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        params.Type,
		Amount:      params.Amount,
		Date:        params.Date,
		Description: params.Description,
		CategoryID:  params.CategoryID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// List retrieves a paginated list of transactions, most recent first.
// Filters compose conjunctively; search is a case-insensitive substring
// match on the description.
func (s *transactionService) List(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		base = base.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		base = base.Where("date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		base = base.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date desc").Order("created_at desc").
		Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetByID(userID, transactionID string) (*models.Transaction, error) {
	// Malformed ids are plain not-found; postgres would reject them as
	// uuid literals otherwise.
	if !uuid.IsValid(transactionID) {
		return nil, apperrors.ErrTransactionNotFound
	}

	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update applies a partial update to a transaction. The category/type
// consistency rule is re-checked against the post-patch values.
func (s *transactionService) Update(userID, transactionID string, p TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	newType := transaction.Type
	if p.Type.Present() {
		t, _ := p.Type.Value()
		switch t {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			newType = t
			updates["type"] = t
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
	}

	if p.Amount.Present() {
		amount, ok := p.Amount.Value()
		if !ok || !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = amount
	}

	if p.Date.Present() {
		date, ok := p.Date.Value()
		if !ok || !validator.IsCalendarDate(date) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be a calendar date (YYYY-MM-DD)")
		}
		updates["date"] = date
	}

	if p.Description.Present() {
		description, _ := p.Description.Value()
		updates["description"] = description
	}

	newCategoryID := transaction.CategoryID
	if p.CategoryID.Present() {
		if categoryID, ok := p.CategoryID.Value(); ok {
			newCategoryID = &categoryID
			updates["category_id"] = categoryID
		} else {
			if s.requireCategory {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "categoryId cannot be cleared")
			}
			newCategoryID = nil
			updates["category_id"] = nil
		}
	}

	// Re-validate the category against the effective type when either side
	// of the pairing changes.
	if newCategoryID != nil && (p.CategoryID.Present() || p.Type.Present()) {
		if err := s.checkCategory(userID, *newCategoryID, newType); err != nil {
			return nil, err
		}
	}

	// An empty patch still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetByID(userID, transactionID)
}

// Delete removes a transaction.
func (s *transactionService) Delete(userID, transactionID string) error {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// checkCategory verifies the category exists under the owner and that its
// type is compatible with the transaction type. Transfer categories accept
// either type.
func (s *transactionService) checkCategory(userID, categoryID string, txType models.TransactionType) error {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "category not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if category.Type != models.CategoryTypeTransfer && string(category.Type) != string(txType) {
		return apperrors.ErrCategoryTypeMismatch
	}
	return nil
}
