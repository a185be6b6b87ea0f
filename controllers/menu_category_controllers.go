package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type MenuCategoryController struct {
	Service *services.MenuService
}

func NewMenuCategoryController(svc *services.MenuService) *MenuCategoryController {
	return &MenuCategoryController{Service: svc}
}

// GetCategoriesByRestaurant returns categories ordered by position.
func (mc *MenuCategoryController) GetCategoriesByRestaurant(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	cats, err := mc.Service.ListCategories(c.Request.Context(), restaurantID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu categories", cats)
}

func (mc *MenuCategoryController) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := mc.Service.GetCategory(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu category", cat)
}

func (mc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !bindBody(c, &req) {
		return
	}
	cat, err := mc.Service.CreateCategory(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu Category created successfully", cat)
}

func (mc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.CategoryUpdate
	if !bindBody(c, &req) {
		return
	}
	cat, err := mc.Service.UpdateCategory(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu category updated", cat)
}

func (mc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := mc.Service.DeleteCategory(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu category deleted", nil)
}

// Reorder takes {"updates": [{"id": 1, "position": 2}, ...]}.
func (mc *MenuCategoryController) Reorder(c *gin.Context) {
	var req struct {
		Updates []services.PositionUpdate `json:"updates" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	if err := mc.Service.Reorder(c.Request.Context(), actorFrom(c), req.Updates); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu categories reordered", nil)
}
