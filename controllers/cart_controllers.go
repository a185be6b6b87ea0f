package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type CartController struct {
	Service *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{Service: svc}
}

func (cc *CartController) GetMyCarts(c *gin.Context) {
	carts, err := cc.Service.ListCarts(c.Request.Context(), actorFrom(c))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of carts", carts)
}

// GetOrCreateCart returns the caller's cart for a restaurant.
func (cc *CartController) GetOrCreateCart(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	cart, err := cc.Service.GetOrCreateCart(c.Request.Context(), actorFrom(c), restaurantID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", cart)
}

func (cc *CartController) AddToCart(c *gin.Context) {
	var req services.AddToCartInput
	if !bindBody(c, &req) {
		return
	}
	item, err := cc.Service.AddItem(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", item)
}

func (cc *CartController) UpdateCartItem(c *gin.Context) {
	id, ok := paramID(c, "cartItemId")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !bindBody(c, &req) {
		return
	}
	item, err := cc.Service.UpdateItemQuantity(c.Request.Context(), actorFrom(c), id, req.Quantity)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", item)
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	id, ok := paramID(c, "cartItemId")
	if !ok {
		return
	}
	if err := cc.Service.RemoveItem(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	id, ok := paramID(c, "cartId")
	if !ok {
		return
	}
	if err := cc.Service.ClearCart(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
