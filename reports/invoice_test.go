package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/craftmint/craftmint-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleOrder() models.Order {
	return models.Order{
		Model:          gorm.Model{ID: 7, CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)},
		Phone:          "9876543210",
		CustomerName:   "Asha Rao",
		DeliveryCharge: 40,
		TotalPrice:     1040,
		Items: []models.OrderItem{
			{Name: "Mug", Price: 500, Quantity: 2, TotalItemPrice: 1000},
		},
	}
}

func TestInvoiceForOrder(t *testing.T) {
	inv := InvoiceForOrder(sampleOrder())

	assert.Equal(t, "7", inv.OrderID)
	assert.Equal(t, models.SourceOnlineStore, inv.Source)

	// One row per item plus the trailing delivery row.
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Mug", inv.Lines[0].Description)
	assert.Equal(t, float64(1000), inv.Lines[0].Total)
	assert.Equal(t, "Delivery Charges", inv.Lines[1].Description)
	assert.Equal(t, float64(40), inv.Lines[1].Total)

	assert.Equal(t, float64(1040), inv.GrandTotal)
	assert.Equal(t, "One Thousand Forty", inv.GrandTotalWords)
}

func TestInvoiceGrandTotalNotRecomputed(t *testing.T) {
	// A backend correction changed the stored total; the document
	// shows the stored value even though the lines disagree.
	o := sampleOrder()
	o.TotalPrice = 900

	inv := InvoiceForOrder(o)
	assert.Equal(t, float64(900), inv.GrandTotal)
	assert.Equal(t, "Nine Hundred", inv.GrandTotalWords)
}

func TestInvoiceForPrintOrder(t *testing.T) {
	o := models.PrintOrder{
		Model:          gorm.Model{ID: 21},
		CustomerName:   "Vikram Shah",
		Phone:          "9123456780",
		DeliveryCharge: 40,
		TotalPrice:     900,
		Files: []models.PrintFile{
			{FileName: "bracket.stl", UnitPrice: 120, Quantity: 3, TotalPrice: 360},
			{FileName: "case.stl", UnitPrice: 500, Quantity: 1, TotalPrice: 500},
		},
	}

	inv := InvoiceForPrintOrder(o)
	assert.Equal(t, models.SourceCustomModel, inv.Source)
	require.Len(t, inv.Lines, 3)
	assert.Equal(t, "bracket.stl", inv.Lines[0].Description)
	assert.Equal(t, "Delivery Charges", inv.Lines[2].Description)
	assert.NotEmpty(t, inv.GrandTotalWords)
}

func TestInvoiceCustomizableLineUsesCost(t *testing.T) {
	o := sampleOrder()
	o.Items = []models.OrderItem{
		{Name: "Nameplate", Price: 0, Quantity: 3, CustomizationCost: 36, TotalItemPrice: 108},
	}

	inv := InvoiceForOrder(o)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, float64(36), inv.Lines[0].UnitPrice)
	assert.Equal(t, float64(108), inv.Lines[0].Total)
}

func TestRenderHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.html")
	tmpl := `<h1>Invoice #{{.OrderID}}</h1>{{range .Lines}}<p>{{.Description}}</p>{{end}}<b>{{.GrandTotalWords}}</b>`
	require.NoError(t, os.WriteFile(path, []byte(tmpl), 0o644))

	out, err := RenderHTML(InvoiceForOrder(sampleOrder()), path)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Invoice #7")
	assert.Contains(t, html, "Delivery Charges")
	assert.Contains(t, html, "One Thousand Forty")
}

func TestRenderHTMLMissingTemplate(t *testing.T) {
	_, err := RenderHTML(Invoice{}, filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
