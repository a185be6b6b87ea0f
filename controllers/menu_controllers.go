package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type MenuController struct {
	Service *services.MenuService
	Images  *utils.ImageStore
}

func NewMenuController(svc *services.MenuService, images *utils.ImageStore) *MenuController {
	return &MenuController{Service: svc, Images: images}
}

func (mc *MenuController) list(c *gin.Context, f repository.MenuItemFilter) {
	if raw := c.Query("isAvailable"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondServiceError(c, utils.Invalid("Invalid isAvailable"))
			return
		}
		f.IsAvailable = &v
	}
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	items, total, err := mc.Service.ListItems(c.Request.Context(), f, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", utils.NewPage(items, total, p))
}

// GetItemsByRestaurant supports categoryId and isAvailable filters.
func (mc *MenuController) GetItemsByRestaurant(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	categoryID, ok := queryID(c, "categoryId")
	if !ok {
		return
	}
	mc.list(c, repository.MenuItemFilter{RestaurantID: restaurantID, CategoryID: categoryID})
}

func (mc *MenuController) GetItemsByCategory(c *gin.Context) {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return
	}
	mc.list(c, repository.MenuItemFilter{CategoryID: categoryID})
}

func (mc *MenuController) GetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := mc.Service.GetItem(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item", item)
}

// saveImage stores the optional "image" upload and returns its path.
func (mc *MenuController) saveImage(c *gin.Context) (string, error) {
	files := uploadedFiles(c, "image")
	if len(files) == 0 {
		return "", nil
	}
	return mc.Images.Save("menu-items", files[0])
}

func (mc *MenuController) CreateItem(c *gin.Context) {
	var req services.MenuItemInput
	if !bindBody(c, &req) {
		return
	}
	image, err := mc.saveImage(c)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	item, err := mc.Service.CreateItem(c.Request.Context(), actorFrom(c), req, image)
	if err != nil {
		mc.Images.Remove(image)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.MenuItemUpdate
	if !bindBody(c, &req) {
		return
	}
	image, err := mc.saveImage(c)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	item, err := mc.Service.UpdateItem(c.Request.Context(), actorFrom(c), id, req, image)
	if err != nil {
		mc.Images.Remove(image)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

func (mc *MenuController) DeleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := mc.Service.DeleteItem(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// ImportItems takes an Excel workbook under the "file" field.
func (mc *MenuController) ImportItems(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		utils.RespondServiceError(c, utils.Invalid("Excel file is required"))
		return
	}
	file, err := fh.Open()
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	defer file.Close()

	result, err := mc.Service.ImportItems(c.Request.Context(), actorFrom(c), restaurantID, file)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu items imported", result)
}
