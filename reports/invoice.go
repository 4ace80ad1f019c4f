package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/craftmint/craftmint-api/models"
)

type InvoiceLine struct {
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// Invoice is the printable document for one order. GrandTotal comes
// straight from the order's stored total, never from re-summing the
// printed lines.
type Invoice struct {
	OrderID         string        `json:"orderId"`
	Source          string        `json:"source"`
	CustomerName    string        `json:"customerName"`
	Phone           string        `json:"phone"`
	Date            time.Time     `json:"date"`
	Lines           []InvoiceLine `json:"lines"`
	GrandTotal      float64       `json:"grandTotal"`
	GrandTotalWords string        `json:"grandTotalWords"`
}

func InvoiceForOrder(o models.Order) Invoice {
	return buildInvoice(fmt.Sprint(o.ID), o.Source(), o.CustomerName, o.Phone, o.CreatedAt, o.Lines(), o.DeliveryCharge, o.TotalPrice)
}

func InvoiceForPrintOrder(o models.PrintOrder) Invoice {
	return buildInvoice(fmt.Sprint(o.ID), o.Source(), o.CustomerName, o.Phone, o.CreatedAt, o.Lines(), o.DeliveryCharge, o.TotalPrice)
}

func buildInvoice(orderID, source, customerName, phone string, date time.Time, lines []models.OrderLine, deliveryCharge, totalPrice float64) Invoice {
	inv := Invoice{
		OrderID:         orderID,
		Source:          source,
		CustomerName:    customerName,
		Phone:           phone,
		Date:            date,
		GrandTotal:      totalPrice,
		GrandTotalWords: AmountInWords(int64(totalPrice)),
	}

	for _, ln := range lines {
		unit := ln.UnitPrice
		total := ln.TotalPrice
		if total == 0 {
			total = unit * float64(ln.Quantity)
		}
		if ln.CustomizationCost > 0 {
			unit = ln.CustomizationCost
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			Description: ln.Name,
			UnitPrice:   unit,
			Quantity:    ln.Quantity,
			Total:       total,
		})
	}

	// Trailing fixed row, even when the charge is zero.
	inv.Lines = append(inv.Lines, InvoiceLine{
		Description: "Delivery Charges",
		UnitPrice:   deliveryCharge,
		Quantity:    1,
		Total:       deliveryCharge,
	})

	return inv
}

// RenderHTML produces the printable document from the given template
// file.
func RenderHTML(inv Invoice, templatePath string) ([]byte, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, inv); err != nil {
		return nil, fmt.Errorf("template execution error: %w", err)
	}
	return buf.Bytes(), nil
}
