package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/craftmint/craftmint-api/models"
)

// TransactionRow is one flattened (order, line) pair. Rows are derived
// on every aggregation pass and never persisted.
type TransactionRow struct {
	UserName          string    `json:"userName"`
	Phone             string    `json:"phone"`
	OrderID           string    `json:"orderId"`
	ProductName       string    `json:"productName"`
	Quantity          int       `json:"quantity"`
	UnitPrice         float64   `json:"unitPrice"`
	ItemTotal         float64   `json:"itemTotal"`
	Discount          float64   `json:"discount"`
	FinalPrice        float64   `json:"finalPrice"`
	CustomizationCost float64   `json:"customizationCost"`
	DeliveryCharge    float64   `json:"deliveryCharge"`
	Source            string    `json:"source"`
	OrderDate         time.Time `json:"orderDate"`
	Status            string    `json:"status"`

	searchableText string
}

// UserOrders pairs a user with both of their order collections.
type UserOrders struct {
	User        models.User
	StoreOrders []models.Order
	PrintOrders []models.PrintOrder
}

// FlattenOrders emits one row per (order, line) pair across both order
// schemas. An order whose line list is empty contributes nothing;
// malformed lines are skipped rather than aborting the ledger.
func FlattenOrders(users []UserOrders) []TransactionRow {
	var rows []TransactionRow
	for _, u := range users {
		for _, o := range u.StoreOrders {
			rows = append(rows, rowsForOrder(u.User, strconv.FormatUint(uint64(o.ID), 10), o.Source(), o.Lines(), o.DeliveryCharge, o.CreatedAt, o.Status)...)
		}
		for _, o := range u.PrintOrders {
			rows = append(rows, rowsForOrder(u.User, strconv.FormatUint(uint64(o.ID), 10), o.Source(), o.Lines(), o.DeliveryCharge, o.CreatedAt, o.Status)...)
		}
	}
	return rows
}

func rowsForOrder(user models.User, orderID, source string, lines []models.OrderLine, deliveryCharge float64, orderDate time.Time, status string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(lines))
	for _, ln := range lines {
		if ln.Name == "" && ln.Quantity <= 0 {
			continue
		}

		unit := ln.UnitPrice
		baseline := unit
		if ln.OriginalPrice > 0 {
			baseline = ln.OriginalPrice
		}

		var discount float64
		if ln.OriginalPrice > ln.UnitPrice {
			discount = (ln.OriginalPrice - ln.UnitPrice) * float64(ln.Quantity)
		}

		final := ln.TotalPrice
		if final == 0 {
			final = unit * float64(ln.Quantity)
		}

		rows = append(rows, TransactionRow{
			UserName:          user.Fullname,
			Phone:             user.Phone,
			OrderID:           orderID,
			ProductName:       ln.Name,
			Quantity:          ln.Quantity,
			UnitPrice:         unit,
			ItemTotal:         baseline * float64(ln.Quantity),
			Discount:          discount,
			FinalPrice:        final,
			CustomizationCost: ln.CustomizationCost,
			// The full order charge is repeated on every row; summing
			// FinalPrice+DeliveryCharge over a multi-line order counts
			// it once per line. Preserved deliberately, use
			// GroupByOrder for per-order figures.
			DeliveryCharge: deliveryCharge,
			Source:         source,
			OrderDate:      orderDate,
			Status:         status,
			searchableText: strings.ToLower(user.Fullname + " " + orderID + " " + ln.Name),
		})
	}
	return rows
}

// Sort orders for the ledger.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceHigh = "highest"
	SortPriceLow  = "lowest"
)

// Filter is applied in order: free-text search, source tag, date
// range, then a stable sort.
type Filter struct {
	Search string
	Source string
	From   time.Time
	To     time.Time
	Sort   string
}

func ApplyFilter(rows []TransactionRow, f Filter) []TransactionRow {
	out := make([]TransactionRow, 0, len(rows))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	to := f.To
	if !to.IsZero() {
		// The upper bound is inclusive through the end of that day.
		to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	}

	for _, r := range rows {
		if search != "" && !strings.Contains(r.searchableText, search) {
			continue
		}
		if f.Source != "" && r.Source != f.Source {
			continue
		}
		if !f.From.IsZero() && r.OrderDate.Before(f.From) {
			continue
		}
		if !to.IsZero() && r.OrderDate.After(to) {
			continue
		}
		out = append(out, r)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].FinalPrice > out[j].FinalPrice })
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].FinalPrice < out[j].FinalPrice })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	}

	return out
}

// Summary reduces a filtered row set to totals. FinalTotal inherits
// the per-row delivery attribution.
type Summary struct {
	TotalAmount        float64 `json:"totalAmount"`
	TotalDiscount      float64 `json:"totalDiscount"`
	TotalCustomization float64 `json:"totalCustomization"`
	TotalDelivery      float64 `json:"totalDelivery"`
	TotalQuantity      int     `json:"totalQuantity"`
	FinalTotal         float64 `json:"finalTotal"`
}

func Summarize(rows []TransactionRow) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalAmount += r.ItemTotal
		s.TotalDiscount += r.Discount
		s.TotalCustomization += r.CustomizationCost
		s.TotalDelivery += r.DeliveryCharge
		s.TotalQuantity += r.Quantity
		s.FinalTotal += r.FinalPrice + r.DeliveryCharge
	}
	return s
}

// OrderGroup is the coarser per-order aggregation used for listings
// and print views.
type OrderGroup struct {
	OrderID        string    `json:"orderId"`
	UserName       string    `json:"userName"`
	Phone          string    `json:"phone"`
	ProductNames   string    `json:"productNames"`
	Quantity       int       `json:"quantity"`
	Amount         float64   `json:"amount"`
	DeliveryCharge float64   `json:"deliveryCharge"`
	TotalAmount    float64   `json:"totalAmount"`
	Source         string    `json:"source"`
	OrderDate      time.Time `json:"orderDate"`
	Status         string    `json:"status"`
}

// GroupByOrder collapses rows back to one entry per (source, order),
// preserving first-seen order of the input. Delivery is counted once
// per order here.
func GroupByOrder(rows []TransactionRow) []OrderGroup {
	index := map[string]int{}
	var groups []OrderGroup
	for _, r := range rows {
		key := r.Source + "#" + r.OrderID
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, OrderGroup{
				OrderID:        r.OrderID,
				UserName:       r.UserName,
				Phone:          r.Phone,
				ProductNames:   r.ProductName,
				Quantity:       r.Quantity,
				Amount:         r.FinalPrice,
				DeliveryCharge: r.DeliveryCharge,
				TotalAmount:    r.FinalPrice + r.DeliveryCharge,
				Source:         r.Source,
				OrderDate:      r.OrderDate,
				Status:         r.Status,
			})
			continue
		}
		g := &groups[i]
		g.ProductNames += ", " + r.ProductName
		g.Quantity += r.Quantity
		g.Amount += r.FinalPrice
		g.TotalAmount += r.FinalPrice
	}
	return groups
}

// PageSize is the fixed load-more batch for grouped listings.
const PageSize = 40

// Paginate windows an already-filtered, already-sorted slice. Page
// counts from 1; the boolean reports whether more pages remain.
func Paginate(groups []OrderGroup, page int) ([]OrderGroup, bool) {
	if page < 1 {
		page = 1
	}
	end := page * PageSize
	if end >= len(groups) {
		return groups, false
	}
	return groups[:end], true
}
