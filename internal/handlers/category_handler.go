package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zerosum/internal/errors"
	"zerosum/internal/models"
	"zerosum/internal/pagination"
	"zerosum/internal/services"
)

// CategoryHandler handles category group and category requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateGroupRequest represents the request payload for creating a category group.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	GroupID          uint                    `json:"group_id" binding:"required"`
	Name             string                  `json:"name" binding:"required,min=1,max=100"`
	Priority         int                     `json:"priority" binding:"required,min=1,max=5"`
	RolloverPolicy   models.RolloverPolicy   `json:"rollover_policy" binding:"required,rollover_policy"`
	RolloverNegative models.RolloverNegative `json:"rollover_negative" binding:"required,rollover_negative"`
	TargetAmount     *int64                  `json:"target_amount" binding:"omitempty,gt=0"`
	TargetMonth      *models.Month           `json:"target_month" binding:"omitempty,month_key"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
type UpdateCategoryRequest struct {
	Name             *string                  `json:"name" binding:"omitempty,min=1,max=100"`
	GroupID          *uint                    `json:"group_id"`
	Priority         *int                     `json:"priority" binding:"omitempty,min=1,max=5"`
	RolloverPolicy   *models.RolloverPolicy   `json:"rollover_policy" binding:"omitempty,rollover_policy"`
	RolloverNegative *models.RolloverNegative `json:"rollover_negative" binding:"omitempty,rollover_negative"`
	TargetAmount     *int64                   `json:"target_amount" binding:"omitempty,gt=0"`
	TargetMonth      *models.Month            `json:"target_month" binding:"omitempty,month_key"`
}

// CreateGroup handles the creation of a new category group.
// @Summary     Create a category group
// @Description Create a new group for organizing categories
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} models.CategoryGroup "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [post]
func (h *CategoryHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.categoryService.CreateGroup(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// GetGroups handles listing all category groups.
// @Summary     Get category groups
// @Description Get all category groups with their categories
// @Tags        categories
// @Produce     json
// @Success     200 {array} models.CategoryGroup "Groups"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [get]
func (h *CategoryHandler) GetGroups(c *gin.Context) {
	groups, err := h.categoryService.GetGroups()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// RenameGroup handles renaming a category group.
// @Summary     Rename a category group
// @Description Change the name of an existing group
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Group ID"
// @Param       request body CreateGroupRequest true "New name"
// @Success     200 {object} models.CategoryGroup "Group updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [put]
func (h *CategoryHandler) RenameGroup(c *gin.Context) {
	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.categoryService.RenameGroup(groupID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup handles deleting an empty category group.
// @Summary     Delete a category group
// @Description Delete a group that has no categories
// @Tags        categories
// @Produce     json
// @Param       id path int true "Group ID"
// @Success     200 {object} map[string]string "Group deleted"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     409 {object} ErrorResponse "Group not empty"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [delete]
func (h *CategoryHandler) DeleteGroup(c *gin.Context) {
	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteGroup(groupID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Description Create a new budget category within a group
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(
		req.GroupID, req.Name, req.Priority, req.RolloverPolicy, req.RolloverNegative,
		req.TargetAmount, req.TargetMonth,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing categories.
// @Summary     Get categories
// @Description Get a paginated list of categories
// @Tags        categories
// @Produce     json
// @Param       include_archived query bool false "Include archived categories"
// @Param       page             query int  false "Page number (default 1)"
// @Param       page_size        query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Category] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	includeArchived := c.Query("include_archived") == "true"

	categories, err := h.categoryService.GetCategories(page, includeArchived)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID handles retrieving a single category.
// @Summary     Get a category
// @Description Get a category by its ID
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} models.Category "Category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category.
// @Summary     Update a category
// @Description Update fields of an existing category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} models.Category "Category updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(
		categoryID, req.Name, req.GroupID, req.Priority, req.RolloverPolicy,
		req.RolloverNegative, req.TargetAmount, req.TargetMonth,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// ArchiveCategory handles archiving a category.
// @Summary     Archive a category
// @Description Hide a category from assignment while keeping its history
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} map[string]string "Category archived"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/archive [post]
func (h *CategoryHandler) ArchiveCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.ArchiveCategory(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category archived successfully"})
}

// DeleteCategory handles deleting an unreferenced category.
// @Summary     Delete a category
// @Description Delete a category that has no budget entries, transactions, or bills
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} map[string]string "Category deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
