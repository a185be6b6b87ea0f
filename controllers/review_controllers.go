package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type ReviewController struct {
	Service *services.ReviewService
	Images  *utils.ImageStore
}

func NewReviewController(svc *services.ReviewService, images *utils.ImageStore) *ReviewController {
	return &ReviewController{Service: svc, Images: images}
}

func (rc *ReviewController) CreateItemReview(c *gin.Context) {
	var req struct {
		ItemID uint `json:"item_id" form:"item_id"`
		services.ReviewInput
	}
	if !bindBody(c, &req) {
		return
	}
	review, err := rc.Service.CreateItemReview(c.Request.Context(), actorFrom(c), req.ItemID, req.ReviewInput)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created successfully", review)
}

func (rc *ReviewController) GetItemReviews(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListItemReviews(c.Request.Context(), repository.ReviewFilter{TargetID: itemID}, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", utils.NewPage(list, total, p))
}

func (rc *ReviewController) GetMyItemReviews(c *gin.Context) {
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListItemReviews(c.Request.Context(), repository.ReviewFilter{UserID: actorFrom(c).UserID}, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", utils.NewPage(list, total, p))
}

func (rc *ReviewController) GetItemReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	review, err := rc.Service.GetItemReview(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review", review)
}

func (rc *ReviewController) UpdateItemReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ReviewInput
	if !bindBody(c, &req) {
		return
	}
	review, err := rc.Service.UpdateItemReview(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review updated successfully", review)
}

func (rc *ReviewController) DeleteItemReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.DeleteItemReview(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted successfully", nil)
}

// CreateRestaurantReview accepts JSON or multipart with images under "images".
func (rc *ReviewController) CreateRestaurantReview(c *gin.Context) {
	var req struct {
		RestaurantID uint `json:"restaurant_id" form:"restaurant_id"`
		services.ReviewInput
	}
	if !bindBody(c, &req) {
		return
	}
	images, err := rc.Images.SaveAll("reviews", uploadedFiles(c, "images"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	review, err := rc.Service.CreateRestaurantReview(c.Request.Context(), actorFrom(c), req.RestaurantID, req.ReviewInput, images)
	if err != nil {
		rc.Images.Remove(images...)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created successfully", review)
}

// GetRestaurantReviews supports a rating filter.
func (rc *ReviewController) GetRestaurantReviews(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	f := repository.ReviewFilter{TargetID: restaurantID}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondServiceError(c, utils.Invalid("Invalid rating"))
			return
		}
		f.Rating = rating
	}
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListRestaurantReviews(c.Request.Context(), f, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", utils.NewPage(list, total, p))
}

func (rc *ReviewController) GetMyRestaurantReviews(c *gin.Context) {
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	list, total, err := rc.Service.ListRestaurantReviews(c.Request.Context(), repository.ReviewFilter{UserID: actorFrom(c).UserID}, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reviews", utils.NewPage(list, total, p))
}

func (rc *ReviewController) GetRestaurantReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	review, err := rc.Service.GetRestaurantReview(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review", review)
}

func (rc *ReviewController) UpdateRestaurantReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ReviewInput
	if !bindBody(c, &req) {
		return
	}
	images, err := rc.Images.SaveAll("reviews", uploadedFiles(c, "images"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	review, err := rc.Service.UpdateRestaurantReview(c.Request.Context(), actorFrom(c), id, req, images)
	if err != nil {
		rc.Images.Remove(images...)
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review updated successfully", review)
}

func (rc *ReviewController) DeleteRestaurantReview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.DeleteRestaurantReview(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted successfully", nil)
}
