package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type ReceiptController struct {
	Orders *services.OrderService
}

func NewReceiptController(orders *services.OrderService) *ReceiptController {
	return &ReceiptController{Orders: orders}
}

// GetReceipt streams the order receipt as a PDF. Visibility follows GetOrder.
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := rc.Orders.GetOrder(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReceiptPDF(&buf, order); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
