package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/reports"
	"github.com/gin-gonic/gin"
)

// loadUserOrders pulls every user with both order collections for an
// aggregation pass. The ledger is recomputed on every request and
// never cached.
func loadUserOrders() ([]reports.UserOrders, error) {
	var users []models.User
	if err := initializers.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]reports.UserOrders, 0, len(users))
	for _, u := range users {
		var storeOrders []models.Order
		if err := initializers.DB.Preload("Items").Where("phone = ?", u.Phone).Find(&storeOrders).Error; err != nil {
			return nil, err
		}

		var printOrders []models.PrintOrder
		if err := initializers.DB.Preload("Files").Where("phone = ?", u.Phone).Find(&printOrders).Error; err != nil {
			return nil, err
		}

		out = append(out, reports.UserOrders{User: u, StoreOrders: storeOrders, PrintOrders: printOrders})
	}
	return out, nil
}

func filterFromQuery(ctx *gin.Context) reports.Filter {
	f := reports.Filter{
		Search: ctx.Query("search"),
		Source: ctx.Query("source"),
		Sort:   ctx.DefaultQuery("sort", reports.SortNewest),
	}
	if from := ctx.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			f.From = t
		}
	}
	if to := ctx.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			f.To = t
		}
	}
	return f
}

// GetTransactions returns the itemized ledger plus summary totals.
func GetTransactions(ctx *gin.Context) {
	users, err := loadUserOrders()
	if err != nil {
		log.Println("Ledger error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to build transaction ledger")
		return
	}

	rows := reports.ApplyFilter(reports.FlattenOrders(users), filterFromQuery(ctx))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":      true,
		"transactions": rows,
		"summary":      reports.Summarize(rows),
	})
}

// GetOrderReport returns the per-order grouping with the fixed-batch
// load-more cursor.
func GetOrderReport(ctx *gin.Context) {
	users, err := loadUserOrders()
	if err != nil {
		log.Println("Ledger error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to build order report")
		return
	}

	rows := reports.ApplyFilter(reports.FlattenOrders(users), filterFromQuery(ctx))
	groups := reports.GroupByOrder(rows)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	window, hasMore := reports.Paginate(groups, page)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orders":  window,
		"metadata": gin.H{
			"total":    len(groups),
			"page":     page,
			"pageSize": reports.PageSize,
			"hasMore":  hasMore,
		},
	})
}

// GetInvoice renders the printable invoice for one order of either
// source.
func GetInvoice(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var invoice reports.Invoice
	switch ctx.Param("source") {
	case "store":
		var order models.Order
		if err := initializers.DB.Preload("Items").First(&order, orderId).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		invoice = reports.InvoiceForOrder(order)
	case "print":
		var order models.PrintOrder
		if err := initializers.DB.Preload("Files").First(&order, orderId).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		invoice = reports.InvoiceForPrintOrder(order)
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order source")
		return
	}

	if ctx.Query("format") == "json" {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"invoice": invoice})
		return
	}

	html, err := reports.RenderHTML(invoice, filepath.Join("templates", "invoice.html"))
	if err != nil {
		log.Println("Invoice render error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// GetOpenOrderCount powers the back-office badge of not-yet-completed
// orders across both sources.
func GetOpenOrderCount(ctx *gin.Context) {
	var storeCount, printCount int64

	if err := initializers.DB.Model(&models.Order{}).Where("status != ?", "Completed").Count(&storeCount).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count open orders")
		return
	}
	if err := initializers.DB.Model(&models.PrintOrder{}).Where("status != ?", "Completed").Count(&printCount).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count open orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"openOrderCount": storeCount + printCount})
}

// UpdateOrderStatus is the only mutation an order permits after it is
// persisted.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if result := initializers.DB.Model(&models.Order{}).Where("id = ?", orderId).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
