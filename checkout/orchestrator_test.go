package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockCartStore struct {
	items     []models.CartItem
	itemsErr  error
	removed   []uint
	removeErr map[uint]error
}

func (m *mockCartStore) Items(ctx context.Context, phone string) ([]models.CartItem, error) {
	return m.items, m.itemsErr
}

func (m *mockCartStore) RemoveItem(ctx context.Context, phone string, cartItemID uint) error {
	if err, ok := m.removeErr[cartItemID]; ok {
		return err
	}
	m.removed = append(m.removed, cartItemID)
	return nil
}

type mockOrderStore struct {
	saved     []*models.Order
	byReceipt map[string]*models.Order
	saveErr   error
}

func (m *mockOrderStore) SaveOrder(ctx context.Context, order *models.Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	order.ID = uint(len(m.saved) + 1)
	m.saved = append(m.saved, order)
	return nil
}

func (m *mockOrderStore) FindByReceipt(ctx context.Context, receipt string) (*models.Order, error) {
	if o, ok := m.byReceipt[receipt]; ok {
		return o, nil
	}
	return nil, nil
}

type mockIntentStore struct {
	byReceipt map[string]*models.CheckoutIntent
	saveErr   error
	findErr   error
}

func (m *mockIntentStore) SaveIntent(ctx context.Context, intent *models.CheckoutIntent) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byReceipt[intent.Receipt] = intent
	return nil
}

func (m *mockIntentStore) FindIntent(ctx context.Context, receipt string) (*models.CheckoutIntent, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byReceipt[receipt], nil
}

type mockAddressStore struct {
	address *models.Address
}

func (m *mockAddressStore) Address(ctx context.Context, phone string, addressID uint) (*models.Address, error) {
	return m.address, nil
}

type mockCouponStore struct {
	coupons []models.Coupon
}

func (m *mockCouponStore) Coupons(ctx context.Context) ([]models.Coupon, error) {
	return m.coupons, nil
}

type mockGateway struct {
	createCalls int
	createErr   error
	verifyErr   error
	lastAmount  int64
}

func (m *mockGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (payments.GatewayOrder, error) {
	m.createCalls++
	m.lastAmount = amountPaise
	if m.createErr != nil {
		return payments.GatewayOrder{}, m.createErr
	}
	return payments.GatewayOrder{ID: "order_test", Amount: amountPaise, Currency: currency, Receipt: receipt}, nil
}

func (m *mockGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	return m.verifyErr
}

type mockNotifier struct {
	confirmed []*models.Order
}

func (m *mockNotifier) OrderConfirmed(order *models.Order) {
	m.confirmed = append(m.confirmed, order)
}

func item(id uint, price float64, qty int) models.CartItem {
	return models.CartItem{Model: gorm.Model{ID: id}, ProductId: int(id), Name: "Item", Price: price, OriginalPrice: price, Quantity: qty}
}

func customItem(id uint, qty int, medium string, cost float64) models.CartItem {
	it := models.CartItem{Model: gorm.Model{ID: id}, ProductId: int(id), Name: "Nameplate", Quantity: qty}
	it.Customization = &models.Customization{MediumText: medium, Cost: cost}
	return it
}

type fixture struct {
	carts     *mockCartStore
	orders    *mockOrderStore
	intents   *mockIntentStore
	addresses *mockAddressStore
	coupons   *mockCouponStore
	gateway   *mockGateway
	notifier  *mockNotifier
	orch      *Orchestrator
}

func newFixture(items ...models.CartItem) *fixture {
	f := &fixture{
		carts:     &mockCartStore{items: items},
		orders:    &mockOrderStore{byReceipt: map[string]*models.Order{}},
		intents:   &mockIntentStore{byReceipt: map[string]*models.CheckoutIntent{}},
		addresses: &mockAddressStore{address: &models.Address{Name: "Home", Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"}},
		coupons:   &mockCouponStore{},
		gateway:   &mockGateway{},
		notifier:  &mockNotifier{},
	}
	f.orch = NewOrchestrator(f.gateway, f.carts, f.orders, f.intents, f.addresses, f.coupons, f.notifier)
	return f
}

func session() Session {
	return Session{Phone: "9876543210", Name: "Asha", AddressID: 1}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	f := newFixture()
	a := f.orch.NewAttempt(session())

	_, err := a.Begin(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cart is empty", verr.Reason)
	assert.Equal(t, 0, f.gateway.createCalls)
	assert.Equal(t, StateIdle, a.State())
}

func TestBeginRejectsMissingAddress(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	f.addresses.address = nil
	a := f.orch.NewAttempt(session())

	_, err := a.Begin(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestBeginBlocksIncompleteCustomization(t *testing.T) {
	carts := [][]models.CartItem{
		{customItem(1, 1, "", 0)},
		{customItem(1, 1, "   ", 0)},
		{item(1, 500, 2), customItem(2, 1, "\t", 0)},
		{{Model: gorm.Model{ID: 3}, Name: "Blank", Price: 0, Quantity: 1}},
	}

	for _, items := range carts {
		f := newFixture(items...)
		a := f.orch.NewAttempt(session())

		_, err := a.Begin(context.Background())

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 0, f.gateway.createCalls, "gateway must not be contacted")
		assert.Equal(t, StateIdle, a.State())
	}
}

func TestBeginQuotesPlainCart(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	a := f.orch.NewAttempt(session())

	intent, err := a.Begin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(1000), intent.Quote.Subtotal)
	assert.Equal(t, float64(40), intent.Quote.DeliveryCharge)
	assert.Equal(t, float64(1040), intent.Quote.GrandTotal)
	assert.Equal(t, int64(104000), intent.Amount)
	assert.Equal(t, "order_test", intent.GatewayOrderID)
	assert.NotEmpty(t, intent.Receipt)
	assert.Equal(t, StateAwaitingGatewayAuth, a.State())
}

func TestBeginQuotesCustomizationCost(t *testing.T) {
	f := newFixture(item(1, 500, 2), customItem(2, 3, "CD", 36))
	a := f.orch.NewAttempt(session())

	intent, err := a.Begin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(1000), intent.Quote.Subtotal)
	assert.Equal(t, float64(108), intent.Quote.CustomizationCost)
	assert.Equal(t, 1000+40+108.0, intent.Quote.GrandTotal)
}

func TestBeginAppliesCoupon(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	f.coupons.coupons = []models.Coupon{{Name: "SAVE10", Discount: 10, Expiry: time.Now().Add(time.Hour)}}
	s := session()
	s.CouponCode = "save10"
	a := f.orch.NewAttempt(s)

	intent, err := a.Begin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(100), intent.Quote.DiscountAmount)
	assert.Equal(t, 1000+40-100.0, intent.Quote.GrandTotal)
}

func TestBeginRejectsBadCoupon(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	s := session()
	s.CouponCode = "NOPE"
	a := f.orch.NewAttempt(s)

	_, err := a.Begin(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestBeginGatewayFailure(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	f.gateway.createErr = errors.New("gateway down")
	a := f.orch.NewAttempt(session())

	_, err := a.Begin(context.Background())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Empty(t, f.orders.saved)
	assert.Equal(t, StateIdle, a.State())
}

func callback() PaymentCallback {
	return PaymentCallback{GatewayOrderID: "order_test", PaymentID: "pay_123", Signature: "sig", Receipt: "rcpt-1"}
}

// beginAndPay runs the first phase and returns the callback the widget
// would hand back for that receipt.
func beginAndPay(t *testing.T, f *fixture, s Session) PaymentCallback {
	t.Helper()
	intent, err := f.orch.NewAttempt(s).Begin(context.Background())
	require.NoError(t, err)
	return PaymentCallback{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "sig",
		Receipt:        intent.Receipt,
	}
}

func TestCompleteRejectsBadSignature(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	f.gateway.verifyErr = payments.ErrSignatureMismatch
	a := f.orch.NewAttempt(session())

	_, err := a.Complete(context.Background(), callback())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, payments.ErrSignatureMismatch)
	assert.Empty(t, f.orders.saved)
	assert.Empty(t, f.carts.removed)
}

func TestCompletePersistsOrderAndClearsCart(t *testing.T) {
	f := newFixture(item(1, 500, 2), customItem(2, 3, "CD", 36))
	cb := beginAndPay(t, f, session())
	a := f.orch.NewAttempt(session())

	order, err := a.Complete(context.Background(), cb)
	require.NoError(t, err)

	require.Len(t, f.orders.saved, 1)
	assert.Equal(t, "9876543210", order.Phone)
	assert.Equal(t, "12 MG Road", order.AddressLine1)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Equal(t, cb.Receipt, order.Receipt)
	assert.Equal(t, "order_test", order.GatewayOrderID)
	assert.Equal(t, "Placed", order.Status)
	assert.Equal(t, 1000+40+108.0, order.TotalPrice)

	require.Len(t, order.Items, 2)
	assert.Equal(t, float64(1000), order.Items[0].TotalItemPrice)
	assert.Equal(t, float64(108), order.Items[1].TotalItemPrice)
	assert.Equal(t, "CD", order.Items[1].MediumText)

	assert.ElementsMatch(t, []uint{1, 2}, f.carts.removed)
	require.Len(t, f.notifier.confirmed, 1)
	assert.Equal(t, StateConfirmed, a.State())
}

func TestCompleteChargesAmountQuotedAtBegin(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	f.coupons.coupons = []models.Coupon{{Name: "SAVE10", Discount: 10, Expiry: time.Now().Add(50 * time.Millisecond)}}
	s := session()
	s.CouponCode = "save10"
	cb := beginAndPay(t, f, s)

	// By the time the widget calls back, the coupon has expired and the
	// cart picked up another line in a second tab.
	f.coupons.coupons[0].Expiry = time.Now().Add(-time.Minute)
	f.carts.items = append(f.carts.items, item(9, 250, 1))

	order, err := f.orch.NewAttempt(s).Complete(context.Background(), cb)
	require.NoError(t, err)

	// The persisted order is the one the gateway captured money for.
	assert.Equal(t, float64(100), order.DiscountAmount)
	assert.Equal(t, 1000+40-100.0, order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(94000), f.gateway.lastAmount)

	// Only the lines that were paid for leave the cart.
	assert.Equal(t, []uint{1}, f.carts.removed)
}

func TestCompleteSurvivesCartClearedElsewhere(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	cb := beginAndPay(t, f, session())
	f.carts.items = nil
	a := f.orch.NewAttempt(session())

	order, err := a.Complete(context.Background(), cb)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, float64(1040), order.TotalPrice)
	assert.Equal(t, StateConfirmed, a.State())
}

func TestCompleteWithoutIntentReportsPaymentID(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	a := f.orch.NewAttempt(session())

	_, err := a.Complete(context.Background(), callback())

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pay_123", perr.PaymentID)
	assert.Equal(t, "rcpt-1", perr.Receipt)
	assert.Empty(t, f.orders.saved)
	assert.Equal(t, StateFailed, a.State())
}

func TestCompleteIsIdempotentOnReceipt(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	existing := &models.Order{Model: gorm.Model{ID: 42}, Receipt: "rcpt-1"}
	f.orders.byReceipt["rcpt-1"] = existing
	a := f.orch.NewAttempt(session())

	order, err := a.Complete(context.Background(), callback())
	require.NoError(t, err)

	assert.Equal(t, uint(42), order.ID)
	assert.Empty(t, f.orders.saved, "no second order may be created")
}

func TestCompletePersistenceFailure(t *testing.T) {
	f := newFixture(item(1, 500, 2))
	cb := beginAndPay(t, f, session())
	f.orders.saveErr = errors.New("store unavailable")
	a := f.orch.NewAttempt(session())

	_, err := a.Complete(context.Background(), cb)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pay_123", perr.PaymentID)
	assert.Equal(t, cb.Receipt, perr.Receipt)
	assert.Empty(t, f.carts.removed, "cart must survive a failed persist")
	assert.Equal(t, StateFailed, a.State())
}

func TestCompleteCleanupFailureIsNonFatal(t *testing.T) {
	f := newFixture(item(1, 500, 2), item(2, 100, 1))
	cb := beginAndPay(t, f, session())
	f.carts.removeErr = map[uint]error{1: errors.New("gone away")}
	a := f.orch.NewAttempt(session())

	order, err := a.Complete(context.Background(), cb)
	require.NoError(t, err)
	require.NotNil(t, order)

	// The other deletion still ran and checkout confirmed.
	assert.Equal(t, []uint{2}, f.carts.removed)
	assert.Equal(t, StateConfirmed, a.State())
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Confirmed", StateConfirmed.String())
	assert.Equal(t, "Failed", StateFailed.String())
}
