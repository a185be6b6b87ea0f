package services

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
)

// WriteReceiptPDF renders an order receipt. The order must have its items,
// restaurant and user loaded.
func WriteReceiptPDF(w io.Writer, order *models.Order) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(order.ReceiptNumber(), false)
	pdf.AddPage()

	restaurantName, restaurantAddress := "Restaurant", ""
	if order.Restaurant != nil {
		restaurantName, restaurantAddress = order.Restaurant.Name, order.Restaurant.Address
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, restaurantName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if restaurantAddress != "" {
		pdf.CellFormat(0, 5, restaurantAddress, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(35, 5, "Receipt", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.ReceiptNumber(), "", 1, "L", false, 0, "")
	pdf.CellFormat(35, 5, "Date", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	if order.User != nil {
		pdf.CellFormat(35, 5, "Customer", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, order.User.Name, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(35, 5, "Status", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, string(order.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(60, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(15, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(28, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range order.Items {
		name := it.Name
		if name == "" && it.MenuItem != nil {
			name = it.MenuItem.Name
		}
		subtotal := utils.LineTotal(it.PriceAtPurchase, it.Quantity).InexactFloat64()
		pdf.CellFormat(60, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprint(it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, utils.FormatCurrency(it.PriceAtPurchase), "", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, utils.FormatCurrency(subtotal), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(28, 8, utils.FormatCurrency(order.TotalAmount), "T", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
