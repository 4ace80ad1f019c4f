package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Source tags discriminating the two order schemas in the ledger.
const (
	SourceOnlineStore = "Online Store"
	SourceCustomModel = "Custom Model"
)

// OrderLine is the uniform view of one billable line. Both order
// variants flatten into it so reporting code never branches on the
// schema.
type OrderLine struct {
	Name              string  `json:"name"`
	UnitPrice         float64 `json:"unitPrice"`
	OriginalPrice     float64 `json:"originalPrice"`
	Quantity          int     `json:"quantity"`
	TotalPrice        float64 `json:"totalPrice"`
	CustomizationCost float64 `json:"customizationCost"`
}

// Order is the online-store variant. Immutable once persisted except
// for Status. Receipt is the idempotency key generated at checkout
// validation time; a duplicate receipt never creates a second order.
type Order struct {
	gorm.Model
	Phone             string      `json:"phone"`
	CustomerName      string      `json:"customerName"`
	AddressName       string      `json:"addressName"`
	AddressLine1      string      `json:"addressLine1"`
	AddressLine2      string      `json:"addressLine2"`
	Landmark          string      `json:"landmark"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	Pincode           string      `json:"pincode"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal          float64     `json:"subtotal"`
	DeliveryCharge    float64     `json:"deliveryCharge"`
	CustomizationCost float64     `json:"customizationCost"`
	DiscountAmount    float64     `json:"discountAmount"`
	TotalPrice        float64     `json:"totalPrice"`
	Status            string      `json:"status"`
	PaymentID         string      `json:"paymentId"`
	GatewayOrderID    string      `json:"gatewayOrderId"`
	Receipt           string      `json:"receipt" gorm:"uniqueIndex;size:64"`
}

type OrderItem struct {
	gorm.Model
	OrderID             int     `json:"orderId"`
	ProductId           int     `json:"productId"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	OriginalPrice       float64 `json:"originalPrice"`
	Quantity            int     `json:"quantity"`
	BigText             string  `json:"bigText"`
	MediumText          string  `json:"mediumText"`
	SmallText           string  `json:"smallText"`
	SpecialInstructions string  `json:"specialInstructions"`
	CustomizationCost   float64 `json:"customizationCost"`
	TotalItemPrice      float64 `json:"totalItemPrice"`
}

func (o Order) Source() string {
	return SourceOnlineStore
}

func (o Order) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLine{
			Name:              it.Name,
			UnitPrice:         it.Price,
			OriginalPrice:     it.OriginalPrice,
			Quantity:          it.Quantity,
			TotalPrice:        it.TotalItemPrice,
			CustomizationCost: it.CustomizationCost,
		})
	}
	return lines
}

// PrintOrder is the custom-print variant: the user uploads design
// files which arrive here already priced by the estimation step.
type PrintOrder struct {
	gorm.Model
	Phone          string      `json:"phone"`
	CustomerName   string      `json:"customerName"`
	Files          []PrintFile `json:"files" gorm:"foreignKey:PrintOrderID;constraint:OnDelete:CASCADE"`
	Subtotal       float64     `json:"subtotal"`
	DeliveryCharge float64     `json:"deliveryCharge"`
	DiscountAmount float64     `json:"discountAmount"`
	TotalPrice     float64     `json:"totalPrice"`
	Status         string      `json:"status"`
	PaymentID      string      `json:"paymentId"`
}

type PrintFile struct {
	gorm.Model
	PrintOrderID  int            `json:"printOrderId"`
	FileName      string         `json:"fileName"`
	FileURL       string         `json:"fileUrl"`
	UnitPrice     float64        `json:"unitPrice"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"totalPrice"`
	PrintSettings datatypes.JSON `json:"printSettings"`
}

func (o PrintOrder) Source() string {
	return SourceCustomModel
}

func (o PrintOrder) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Files))
	for _, f := range o.Files {
		lines = append(lines, OrderLine{
			Name:       f.FileName,
			UnitPrice:  f.UnitPrice,
			Quantity:   f.Quantity,
			TotalPrice: f.TotalPrice,
		})
	}
	return lines
}
