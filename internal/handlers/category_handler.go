package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moolah/internal/errors"
	"moolah/internal/models"
	"moolah/internal/pagination"
	"moolah/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name      string              `json:"name" binding:"required"`
	Type      models.CategoryType `json:"type" binding:"omitempty,category_type"`
	Colour    *string             `json:"colour" binding:"omitempty,hex_colour"`
	ParentID  *string             `json:"parent_id"`
	SortOrder int                 `json:"sort_order"`
	Status    models.EntityStatus `json:"status" binding:"omitempty,entity_status"`
}

// listCategoriesQuery holds the list filters parsed from the query string.
type listCategoriesQuery struct {
	pagination.PageRequest
	Status   *models.EntityStatus `form:"status" binding:"omitempty,entity_status"`
	ParentID *string              `form:"parent_id"`
	TopLevel bool                 `form:"top_level"`
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Description Create a new category, optionally nested under a parent
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate category name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.Create(uid, services.CreateCategoryParams{
		Name:      req.Name,
		Type:      req.Type,
		Colour:    req.Colour,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		Status:    req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing categories for the authenticated user.
// @Summary     List categories
// @Description Get a paginated flat list of categories ordered by sort order then name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (active/archived)"
// @Param       parent_id query string false "Filter by parent category"
// @Param       top_level query bool   false "Only top-level categories"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Category] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.categoryService.List(uid, services.CategoryFilter{
		Status:   query.Status,
		ParentID: query.ParentID,
		TopLevel: query.TopLevel,
	}, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryTree handles returning categories assembled as a tree.
// @Summary     Get category tree
// @Description Get all categories nested under their parents; orphans surface as roots
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Category "Category tree"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tree, err := h.categoryService.Tree(uid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": tree})
}

// GetCategoryByID handles the retrieval of a specific category.
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetByID(uid, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles a partial update of a category.
// @Summary     Update category
// @Description Update the supplied fields of a category; absent fields are untouched
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Category ID"
// @Param       request body services.CategoryPatch true "Fields to update"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate category name"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var p services.CategoryPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.Update(uid, c.Param("id"), p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category.
// @Summary     Delete category
// @Description Delete a category; pass cascade=true to also remove its direct children
// @Tags        categories
// @Security    BearerAuth
// @Param       id      path  string true  "Category ID"
// @Param       cascade query bool   false "Also delete direct children"
// @Success     204 "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category has children"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cascade := c.Query("cascade") == "true"
	if err := h.categoryService.Delete(uid, c.Param("id"), cascade); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
