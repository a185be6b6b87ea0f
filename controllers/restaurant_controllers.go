package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type RestaurantController struct {
	Service *services.RestaurantService
	Images  *utils.ImageStore
}

func NewRestaurantController(svc *services.RestaurantService, images *utils.ImageStore) *RestaurantController {
	return &RestaurantController{Service: svc, Images: images}
}

// GetRestaurants lists approved restaurants, optionally filtered by name.
func (rc *RestaurantController) GetRestaurants(c *gin.Context) {
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListApproved(c.Request.Context(), c.Query("search"), p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", utils.NewPage(list, total, p))
}

func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rest, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant", rest)
}

func (rc *RestaurantController) MyRestaurants(c *gin.Context) {
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListOwned(c.Request.Context(), actorFrom(c), p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My restaurants", utils.NewPage(list, total, p))
}

// CreateRestaurant accepts JSON or multipart with images under "images".
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if !bindBody(c, &req) {
		return
	}
	images, err := rc.Images.SaveAll("restaurants", uploadedFiles(c, "images"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	rest, err := rc.Service.Create(c.Request.Context(), actorFrom(c), req, images)
	if err != nil {
		rc.Images.Remove(images...)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", rest)
}

func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.RestaurantUpdate
	if !bindBody(c, &req) {
		return
	}
	images, err := rc.Images.SaveAll("restaurants", uploadedFiles(c, "images"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	rest, err := rc.Service.Update(c.Request.Context(), actorFrom(c), id, req, images)
	if err != nil {
		rc.Images.Remove(images...)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated successfully", rest)
}

func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted successfully", nil)
}

func (rc *RestaurantController) SetApproval(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		IsApproved *bool `json:"is_approved" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	rest, err := rc.Service.SetApproval(c.Request.Context(), actorFrom(c), id, *req.IsApproved)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	msg := "Restaurant approved"
	if !*req.IsApproved {
		msg = "Restaurant rejected"
	}
	utils.RespondJSON(c, http.StatusOK, msg, rest)
}
