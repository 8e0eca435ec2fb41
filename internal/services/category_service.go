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

// categoryService handles category-related business logic, including the
// hierarchy rules: no self-parenting, parents must exist under the same
// owner, names are unique per owner case-insensitively, and deletion of a
// parent either blocks on children or cascades to them atomically.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Create creates a new category.
func (s *categoryService) Create(userID string, params CreateCategoryParams) (*models.Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if params.Colour != nil && !validator.IsHexColour(*params.Colour) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "colour must be a hex colour like #AABBCC")
	}

	categoryType := params.Type
	if categoryType == "" {
		categoryType = models.CategoryTypeExpense
	}
	status := params.Status
	if status == "" {
		status = models.EntityStatusActive
	}

	if err := s.checkNameCollision(userID, strings.ToLower(name), ""); err != nil {
		return nil, err
	}
	if params.ParentID != nil {
		if err := s.validateParent(userID, *params.ParentID, ""); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		NameLower: strings.ToLower(name),
		Type:      categoryType,
		Colour:    params.Colour,
		ParentID:  params.ParentID,
		SortOrder: params.SortOrder,
		Status:    status,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// List retrieves a paginated list of categories for a user, ordered by
// sort order then name.
func (s *categoryService) List(userID string, filter CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.TopLevel {
		base = base.Where("parent_id IS NULL")
	} else if filter.ParentID != nil {
		base = base.Where("parent_id = ?", *filter.ParentID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("sort_order asc").Order("name asc").
		Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Tree returns the user's categories nested by parent. Children whose
// parent is missing (e.g. orphaned by a cascade) surface as roots.
func (s *categoryService) Tree(userID string) ([]*models.Category, error) {
	var categories []*models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("sort_order asc").Order("name asc").
		Limit(pagination.MaxPageSize).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	roots := make([]*models.Category, 0, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	return roots, nil
}

// GetByID retrieves a category by ID for a specific user.
func (s *categoryService) GetByID(userID, categoryID string) (*models.Category, error) {
	// Postgres rejects malformed uuid literals in the id comparison, so a
	// bad id short-circuits to not found instead of a store error.
	if !uuid.IsValid(categoryID) {
		return nil, apperrors.ErrCategoryNotFound
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// Update applies a partial update to a category.
func (s *categoryService) Update(userID, categoryID string, p CategoryPatch) (*models.Category, error) {
	category, err := s.GetByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if p.Name.Present() {
		name, ok := p.Name.Value()
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		nameLower := strings.ToLower(name)
		if err := s.checkNameCollision(userID, nameLower, categoryID); err != nil {
			return nil, err
		}
		updates["name"] = name
		updates["name_lower"] = nameLower
	}

	if p.Type.Present() {
		t, _ := p.Type.Value()
		switch t {
		case models.CategoryTypeExpense, models.CategoryTypeIncome, models.CategoryTypeTransfer:
			updates["type"] = t
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be expense, income, or transfer")
		}
	}

	if p.Colour.Present() {
		if colour, ok := p.Colour.Value(); ok {
			if !validator.IsHexColour(colour) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "colour must be a hex colour like #AABBCC")
			}
			updates["colour"] = colour
		} else {
			updates["colour"] = nil
		}
	}

	if p.ParentID.Present() {
		if parentID, ok := p.ParentID.Value(); ok {
			if err := s.validateParent(userID, parentID, categoryID); err != nil {
				return nil, err
			}
			updates["parent_id"] = parentID
		} else {
			updates["parent_id"] = nil
		}
	}

	if p.SortOrder.Present() {
		sortOrder, _ := p.SortOrder.Value()
		updates["sort_order"] = sortOrder
	}

	if p.Status.Present() {
		status, _ := p.Status.Value()
		switch status {
		case models.EntityStatusActive, models.EntityStatusArchived:
			updates["status"] = status
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be active or archived")
		}
	}

	// An empty patch still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetByID(userID, categoryID)
}

// Delete removes a category. With children and cascade=false it fails with
// a conflict; with cascade=true the category and its direct children are
// removed in a single transaction so a partial cascade can never be
// observed. Grandchildren are not touched.
func (s *categoryService) Delete(userID, categoryID string, cascade bool) error {
	category, err := s.GetByID(userID, categoryID)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND parent_id = ?", userID, categoryID).
		Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if childCount > 0 && !cascade {
		return apperrors.ErrCategoryHasChildren
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if cascade {
			if err := tx.Where("user_id = ? AND parent_id = ?", userID, categoryID).
				Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// checkNameCollision fails when another category (not excludeID) under the
// same owner already uses the case-folded name.
func (s *categoryService) checkNameCollision(userID, nameLower, excludeID string) error {
	q := s.db.Model(&models.Category{}).Where("user_id = ? AND name_lower = ?", userID, nameLower)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}

// validateParent fails when the candidate parent is the category itself or
// does not exist under the same owner.
func (s *categoryService) validateParent(userID, parentID, selfID string) error {
	if selfID != "" && parentID == selfID {
		return apperrors.ErrSelfParentCategory
	}

	var parent models.Category
	if err := s.db.Where("id = ? AND user_id = ?", parentID, userID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "parent category not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
