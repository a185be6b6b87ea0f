package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Service: svc}
}

// CreateOrder checks out the cart named by cart_id.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CartID uint `json:"cart_id" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	order, err := oc.Service.CreateFromCart(c.Request.Context(), actorFrom(c), req.CartID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

func (oc *OrderController) GetMyOrders(c *gin.Context) {
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	orders, total, err := oc.Service.ListUserOrders(c.Request.Context(), actorFrom(c), models.OrderStatus(c.Query("status")), p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", utils.NewPage(orders, total, p))
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Service.GetOrder(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order", order)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Service.Cancel(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if !bindBody(c, &req) {
		return
	}
	order, err := oc.Service.UpdateStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", order)
}

func (oc *OrderController) GetRestaurantOrders(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	p := utils.ParsePagination(c, utils.DefaultPageLimit)
	orders, total, err := oc.Service.ListRestaurantOrders(c.Request.Context(), actorFrom(c), restaurantID, models.OrderStatus(c.Query("status")), p)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurant orders", utils.NewPage(orders, total, p))
}
