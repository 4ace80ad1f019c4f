package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/payments"
	"github.com/craftmint/craftmint-api/pricing"
	"github.com/google/uuid"
)

// State of a checkout attempt. Transitions are strictly sequential;
// Failed absorbs any non-terminal state.
type State int

const (
	StateIdle State = iota
	StateValidatingCart
	StateAwaitingGatewayAuth
	StateVerifyingPayment
	StatePersistingOrder
	StateClearingCart
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidatingCart:
		return "ValidatingCart"
	case StateAwaitingGatewayAuth:
		return "AwaitingGatewayAuth"
	case StateVerifyingPayment:
		return "VerifyingPayment"
	case StatePersistingOrder:
		return "PersistingOrder"
	case StateClearingCart:
		return "ClearingCart"
	case StateConfirmed:
		return "Confirmed"
	default:
		return "Failed"
	}
}

// Session is the caller's identity and checkout choices, passed in
// explicitly rather than read from ambient state.
type Session struct {
	Phone      string
	Name       string
	AddressID  uint
	CouponCode string
}

type CartStore interface {
	Items(ctx context.Context, phone string) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, phone string, cartItemID uint) error
}

type OrderStore interface {
	SaveOrder(ctx context.Context, order *models.Order) error
	FindByReceipt(ctx context.Context, receipt string) (*models.Order, error)
}

type AddressStore interface {
	Address(ctx context.Context, phone string, addressID uint) (*models.Address, error)
}

// IntentStore holds the order snapshot written by Begin and read back
// by Complete. The snapshot fixes the amount and line items at the
// moment the gateway authorized them.
type IntentStore interface {
	SaveIntent(ctx context.Context, intent *models.CheckoutIntent) error
	FindIntent(ctx context.Context, receipt string) (*models.CheckoutIntent, error)
}

type CouponStore interface {
	Coupons(ctx context.Context) ([]models.Coupon, error)
}

// Notifier receives the persisted order after confirmation. Delivery
// is best-effort and never fails the checkout.
type Notifier interface {
	OrderConfirmed(order *models.Order)
}

type Orchestrator struct {
	gateway   payments.Gateway
	carts     CartStore
	orders    OrderStore
	intents   IntentStore
	addresses AddressStore
	coupons   CouponStore
	notifier  Notifier
}

func NewOrchestrator(gateway payments.Gateway, carts CartStore, orders OrderStore, intents IntentStore, addresses AddressStore, coupons CouponStore, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		gateway:   gateway,
		carts:     carts,
		orders:    orders,
		intents:   intents,
		addresses: addresses,
		coupons:   coupons,
		notifier:  notifier,
	}
}

// Quote is the priced cart at validation time.
type Quote struct {
	Subtotal          float64 `json:"subtotal"`
	DeliveryCharge    float64 `json:"deliveryCharge"`
	CustomizationCost float64 `json:"customizationCost"`
	DiscountAmount    float64 `json:"discountAmount"`
	GrandTotal        float64 `json:"grandTotal"`
}

// PaymentIntent is what the client opens the payment widget with.
type PaymentIntent struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	Quote          Quote  `json:"quote"`
}

// PaymentCallback carries the signed fields the widget hands back on
// success, plus the receipt issued by Begin.
type PaymentCallback struct {
	GatewayOrderID string `json:"gatewayOrderId" binding:"required"`
	PaymentID      string `json:"paymentId" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
	Receipt        string `json:"receipt" binding:"required"`
}

// Attempt is one checkout run for one session. Begin covers
// ValidatingCart and AwaitingGatewayAuth; the widget interaction
// happens on the client between the two calls; Complete resumes at
// VerifyingPayment.
type Attempt struct {
	o       *Orchestrator
	session Session
	state   State
}

func (o *Orchestrator) NewAttempt(session Session) *Attempt {
	return &Attempt{o: o, session: session, state: StateIdle}
}

func (a *Attempt) State() State {
	return a.state
}

type validatedCart struct {
	items   []models.CartItem
	address *models.Address
	quote   Quote
}

// validate enforces the pre-conditions and prices the cart. Any
// failure returns a ValidationError and the attempt drops back to
// Idle with no side effects.
func (a *Attempt) validate(ctx context.Context) (*validatedCart, error) {
	a.state = StateValidatingCart

	items, err := a.o.carts.Items(ctx, a.session.Phone)
	if err != nil {
		a.state = StateFailed
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if len(items) == 0 {
		a.state = StateIdle
		return nil, &ValidationError{Reason: "cart is empty"}
	}

	address, err := a.o.addresses.Address(ctx, a.session.Phone, a.session.AddressID)
	if err != nil || address == nil {
		a.state = StateIdle
		return nil, &ValidationError{Reason: "no delivery address selected"}
	}

	for _, it := range items {
		if it.Customizable() && !pricing.CustomizationComplete(it.Customization) {
			a.state = StateIdle
			return nil, &ValidationError{Reason: "customization incomplete for " + it.Name}
		}
	}

	quote := Quote{
		Subtotal:          pricing.Subtotal(items),
		DeliveryCharge:    pricing.DeliveryCharge(len(items)),
		CustomizationCost: pricing.CustomizationTotal(items),
	}

	if a.session.CouponCode != "" {
		catalog, err := a.o.coupons.Coupons(ctx)
		if err != nil {
			a.state = StateFailed
			return nil, fmt.Errorf("loading coupons: %w", err)
		}
		res, err := pricing.EvaluateCoupon(catalog, a.session.CouponCode, quote.Subtotal, time.Now())
		if err != nil {
			a.state = StateIdle
			return nil, &ValidationError{Reason: err.Error()}
		}
		quote.DiscountAmount = res.DiscountAmount
	}

	quote.GrandTotal = pricing.GrandTotal(quote.Subtotal, quote.DeliveryCharge, quote.CustomizationCost, quote.DiscountAmount)

	return &validatedCart{items: items, address: address, quote: quote}, nil
}

// Begin validates the cart and opens a gateway payment intent. The
// receipt doubles as the idempotency key for the eventual persist.
// The assembled order is snapshotted under the receipt before the
// client ever pays, so Complete never reprices the live cart.
func (a *Attempt) Begin(ctx context.Context) (*PaymentIntent, error) {
	cart, err := a.validate(ctx)
	if err != nil {
		return nil, err
	}

	receipt := uuid.NewString()

	a.state = StateAwaitingGatewayAuth
	gw, err := a.o.gateway.CreateOrder(ctx, payments.ToPaise(cart.quote.GrandTotal), "INR", receipt)
	if err != nil {
		a.state = StateIdle
		return nil, &GatewayError{Err: err}
	}

	order := a.assembleOrder(cart)
	order.Receipt = receipt
	order.GatewayOrderID = gw.ID

	snapshot, err := json.Marshal(order)
	if err != nil {
		a.state = StateFailed
		return nil, fmt.Errorf("encoding order snapshot: %w", err)
	}
	itemIDs := make([]uint, 0, len(cart.items))
	for _, it := range cart.items {
		itemIDs = append(itemIDs, it.ID)
	}
	ids, err := json.Marshal(itemIDs)
	if err != nil {
		a.state = StateFailed
		return nil, fmt.Errorf("encoding cart item ids: %w", err)
	}

	// No funds have moved yet, so failing the attempt here is safe.
	intent := &models.CheckoutIntent{
		Receipt:        receipt,
		Phone:          a.session.Phone,
		GatewayOrderID: gw.ID,
		Amount:         gw.Amount,
		OrderSnapshot:  snapshot,
		CartItemIDs:    ids,
	}
	if err := a.o.intents.SaveIntent(ctx, intent); err != nil {
		a.state = StateFailed
		return nil, fmt.Errorf("saving checkout intent: %w", err)
	}

	return &PaymentIntent{
		GatewayOrderID: gw.ID,
		Amount:         gw.Amount,
		Currency:       gw.Currency,
		Receipt:        receipt,
		Quote:          cart.quote,
	}, nil
}

// Complete runs VerifyingPayment through Confirmed. Verification
// failure persists nothing. Once the signature checks out the order
// comes from the snapshot taken at Begin, never from the live cart,
// and any failure past that point is reported with the captured
// payment id and never retried here.
func (a *Attempt) Complete(ctx context.Context, cb PaymentCallback) (*models.Order, error) {
	a.state = StateVerifyingPayment
	if err := a.o.gateway.VerifySignature(cb.GatewayOrderID, cb.PaymentID, cb.Signature); err != nil {
		a.state = StateIdle
		return nil, &GatewayError{Err: err}
	}

	// Replays of the same capture must not create a second order.
	if existing, err := a.o.orders.FindByReceipt(ctx, cb.Receipt); err == nil && existing != nil {
		a.state = StateConfirmed
		return existing, nil
	}

	// Funds are captured from here on; every failure must surface the
	// payment id so the capture can be reconciled.
	intent, err := a.o.intents.FindIntent(ctx, cb.Receipt)
	if err != nil {
		a.state = StateFailed
		return nil, &PersistenceError{PaymentID: cb.PaymentID, Receipt: cb.Receipt, Err: fmt.Errorf("loading checkout intent: %w", err)}
	}
	if intent == nil {
		a.state = StateFailed
		return nil, &PersistenceError{PaymentID: cb.PaymentID, Receipt: cb.Receipt, Err: fmt.Errorf("no checkout intent for receipt %s", cb.Receipt)}
	}

	var order models.Order
	if err := json.Unmarshal(intent.OrderSnapshot, &order); err != nil {
		a.state = StateFailed
		return nil, &PersistenceError{PaymentID: cb.PaymentID, Receipt: cb.Receipt, Err: fmt.Errorf("decoding order snapshot: %w", err)}
	}
	order.PaymentID = cb.PaymentID

	a.state = StatePersistingOrder
	if err := a.o.orders.SaveOrder(ctx, &order); err != nil {
		a.state = StateFailed
		return nil, &PersistenceError{PaymentID: cb.PaymentID, Receipt: cb.Receipt, Err: err}
	}

	a.state = StateClearingCart
	var itemIDs []uint
	if err := json.Unmarshal(intent.CartItemIDs, &itemIDs); err != nil {
		log.Printf("cart cleanup skipped for order %d: %v", order.ID, err)
	}
	for _, id := range itemIDs {
		// Deletions are independent; one failure leaves a stale line
		// behind but never blocks the rest or the confirmation.
		if err := a.o.carts.RemoveItem(ctx, a.session.Phone, id); err != nil {
			log.Printf("cart cleanup failed for item %d (order %d): %v", id, order.ID, err)
		}
	}

	if a.o.notifier != nil {
		a.o.notifier.OrderConfirmed(&order)
	}

	a.state = StateConfirmed
	return &order, nil
}

func (a *Attempt) assembleOrder(cart *validatedCart) *models.Order {
	order := &models.Order{
		Phone:             a.session.Phone,
		CustomerName:      a.session.Name,
		AddressName:       cart.address.Name,
		AddressLine1:      cart.address.Line1,
		AddressLine2:      cart.address.Line2,
		Landmark:          cart.address.Landmark,
		City:              cart.address.City,
		State:             cart.address.State,
		Pincode:           cart.address.Pincode,
		Subtotal:          cart.quote.Subtotal,
		DeliveryCharge:    cart.quote.DeliveryCharge,
		CustomizationCost: cart.quote.CustomizationCost,
		DiscountAmount:    cart.quote.DiscountAmount,
		TotalPrice:        cart.quote.GrandTotal,
		Status:            "Placed",
	}

	for _, it := range cart.items {
		line := models.OrderItem{
			ProductId:     it.ProductId,
			Name:          it.Name,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Quantity:      it.Quantity,
		}
		if it.Customizable() && it.Customization != nil {
			c := it.Customization
			line.BigText = c.BigText
			line.MediumText = c.MediumText
			line.SmallText = c.SmallText
			line.SpecialInstructions = c.SpecialInstructions
			line.CustomizationCost = c.Cost
			line.TotalItemPrice = c.Cost * float64(it.Quantity)
		} else {
			line.TotalItemPrice = it.Price * float64(it.Quantity)
		}
		order.Items = append(order.Items, line)
	}

	return order
}
