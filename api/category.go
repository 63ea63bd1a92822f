package api

import (
	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the seeded expense category list.
type CategoryHandler struct{}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List returns the expense categories
// @Summary List categories
// @Description Seeded expense categories in display order
// @Tags categories
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory} "categories"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.ExpenseCategory
	if err := database.DB.Order("sort ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list categories"))
		return
	}

	Success(c, categories)
}
