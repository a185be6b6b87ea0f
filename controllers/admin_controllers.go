package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type AdminController struct {
	Admin       *services.AdminService
	Restaurants *services.RestaurantService
}

func NewAdminController(admin *services.AdminService, restaurants *services.RestaurantService) *AdminController {
	return &AdminController{Admin: admin, Restaurants: restaurants}
}

func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Admin.Dashboard(c.Request.Context(), actorFrom(c))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetLogs supports action and targetType filters.
func (ac *AdminController) GetLogs(c *gin.Context) {
	p := utils.ParsePagination(c, utils.AdminPageLimit)
	f := repository.AdminLogFilter{
		Action:     strings.ToUpper(c.Query("action")),
		TargetType: strings.ToUpper(c.Query("targetType")),
	}
	logs, total, err := ac.Admin.Logs(c.Request.Context(), actorFrom(c), f, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Admin logs", utils.NewPage(logs, total, p))
}

// GetUsers supports role and search filters.
func (ac *AdminController) GetUsers(c *gin.Context) {
	p := utils.ParsePagination(c, utils.AdminPageLimit)
	f := repository.UserFilter{
		Role:   models.Role(strings.ToUpper(c.Query("role"))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	users, total, err := ac.Admin.Users(c.Request.Context(), actorFrom(c), f, p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", utils.NewPage(users, total, p))
}

func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	user, err := ac.Admin.UpdateUserRole(c.Request.Context(), actorFrom(c), userID, req.Role)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User role updated successfully", user)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteUser(c.Request.Context(), actorFrom(c), userID); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", nil)
}

func (ac *AdminController) GetPendingRestaurants(c *gin.Context) {
	p := utils.ParsePagination(c, utils.AdminPageLimit)
	list, total, err := ac.Restaurants.ListPending(c.Request.Context(), p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending restaurants", utils.NewPage(list, total, p))
}
