package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"moolah/internal/derive"
	apperrors "moolah/internal/errors"
	"moolah/internal/models"
	"moolah/internal/pagination"
	"moolah/internal/uuid"
	"moolah/internal/validator"
)

// goalService handles goal-related business logic. Status and progress are
// derived from the stored amounts on every read; only active/archived are
// ever persisted in the status column.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// Create creates a new goal.
func (s *goalService) Create(userID string, params CreateGoalParams) (*models.Goal, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if !params.TargetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "targetAmount must be positive")
	}
	if params.CurrentAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currentAmount cannot be negative")
	}
	if params.CategoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *params.CategoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	currency := params.Currency
	if currency == "" {
		currency = "EUR"
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
		Currency:      currency,
		CategoryID:    params.CategoryID,
		DueDate:       params.DueDate,
		Notes:         params.Notes,
		Status:        models.GoalStatusActive,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	derive.ApplyGoal(goal)
	return goal, nil
}

// List returns a paginated list of goals, most recent first, with derived
// status and progress. The status filter matches the derived status:
// "completed" selects goals whose amounts satisfy the completion rule even
// though the column never stores that value.
func (s *goalService) List(userID string, filter GoalFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	if filter.Status != nil {
		switch *filter.Status {
		case models.GoalStatusArchived:
			base = base.Where("status = ?", models.GoalStatusArchived)
		case models.GoalStatusCompleted:
			base = base.Where("status <> ?", models.GoalStatusArchived).
				Where("target_amount > 0 AND current_amount >= target_amount")
		case models.GoalStatusActive:
			base = base.Where("status = ?", models.GoalStatusActive).
				Where("NOT (target_amount > 0 AND current_amount >= target_amount)")
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be active, completed, or archived")
		}
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DueFrom != nil {
		base = base.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		base = base.Where("due_date <= ?", *filter.DueTo)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("created_at desc").
		Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range goals {
		derive.ApplyGoal(&goals[i])
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a goal by ID with derived fields populated.
func (s *goalService) GetByID(userID, goalID string) (*models.Goal, error) {
	goal, err := s.fetch(userID, goalID)
	if err != nil {
		return nil, err
	}
	derive.ApplyGoal(goal)
	return goal, nil
}

// Update applies a partial update to a goal.
func (s *goalService) Update(userID, goalID string, p GoalPatch) (*models.Goal, error) {
	goal, err := s.fetch(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if p.Title.Present() {
		title, ok := p.Title.Value()
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		updates["title"] = title
	}

	if p.TargetAmount.Present() {
		target, ok := p.TargetAmount.Value()
		if !ok || !target.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "targetAmount must be positive")
		}
		updates["target_amount"] = target
	}

	if p.CurrentAmount.Present() {
		current, ok := p.CurrentAmount.Value()
		if !ok || current.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currentAmount cannot be negative")
		}
		updates["current_amount"] = current
	}

	if p.Currency.Present() {
		currency, ok := p.Currency.Value()
		if !ok || !validator.IsCurrency(currency) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be an ISO 4217 code")
		}
		updates["currency"] = currency
	}

	if p.CategoryID.Present() {
		if categoryID, ok := p.CategoryID.Value(); ok {
			var category models.Category
			if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category not found")
				}
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			updates["category_id"] = categoryID
		} else {
			updates["category_id"] = nil
		}
	}

	if p.DueDate.Present() {
		if dueDate, ok := p.DueDate.Value(); ok {
			if !validator.IsCalendarDate(dueDate) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dueDate must be a calendar date (YYYY-MM-DD)")
			}
			updates["due_date"] = dueDate
		} else {
			updates["due_date"] = nil
		}
	}

	if p.Notes.Present() {
		notes, _ := p.Notes.Value()
		updates["notes"] = notes
	}

	if p.Status.Present() {
		status, _ := p.Status.Value()
		// Completed is derived from the amounts and cannot be assigned.
		switch status {
		case models.GoalStatusActive, models.GoalStatusArchived:
			updates["status"] = status
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be active or archived")
		}
	}

	// An empty patch still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetByID(userID, goalID)
}

// Delete removes a goal.
func (s *goalService) Delete(userID, goalID string) error {
	goal, err := s.fetch(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// fetch loads a goal without derived fields.
func (s *goalService) fetch(userID, goalID string) (*models.Goal, error) {
	// Malformed ids are plain not-found; postgres would reject them as
	// uuid literals otherwise.
	if !uuid.IsValid(goalID) {
		return nil, apperrors.ErrGoalNotFound
	}

	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}
