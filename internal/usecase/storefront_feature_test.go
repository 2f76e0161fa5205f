//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
	"toy-rental-storefront/internal/usecase/shared"
	"toy-rental-storefront/tests/common/builder"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

func TestStorefrontFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeStorefrontScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("storefront feature scenarios failed")
	}
}

// storefrontWorld is the per-scenario state shared by the step definitions.
type storefrontWorld struct {
	ctx     context.Context
	clock   *clock.MockClock
	catalog *fakeCatalog
	carts   *fakeCartService
	orders  *fakeOrderService
	sess    *user.Session

	cartUC      usecase.CartUseCase
	promotionUC usecase.PromotionUseCase
	checkoutUC  usecase.CheckoutUseCase

	view    *usecase.CartView
	outcome *usecase.PromotionOutcome
	conf    *usecase.OrderConfirmation
	lastErr error
}

func initializeStorefrontScenario(sc *godog.ScenarioContext) {
	w := &storefrontWorld{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = storefrontWorld{ctx: ctx}
		w.clock = clock.NewMockClock(testNow)
		w.catalog = &fakeCatalog{products: make(map[string]*product.Product)}
		w.carts = &fakeCartService{catalog: w.catalog, lines: make(map[string][]cart.LineItem)}
		w.orders = &fakeOrderService{carts: w.carts}

		promos := newMemPromoStore()
		state := usecase.NewCartState(w.carts, newMemCartCache(), promos)
		selections := rental.NewSelectionBuilder(w.clock, time.UTC)
		engine := promotion.NewEngine(promotion.DefaultCatalog())
		w.cartUC = usecase.NewCartUseCase(w.catalog, w.carts, state, selections)
		w.promotionUC = usecase.NewPromotionUseCase(engine, promos, state, time.Second)
		w.checkoutUC = usecase.NewCheckoutUseCase(w.orders, state, &fakeUnitOfWork{}, w.clock)
		return ctx, nil
	})

	sc.Step(`^today is "([^"]*)"$`, w.todayIs)
	sc.Step(`^the catalog lists product "([^"]*)" with plans:$`, w.catalogListsProduct)
	sc.Step(`^I am signed in$`, w.signedIn)
	sc.Step(`^I add product "([^"]*)" for (\d+) days starting "([^"]*)"$`, w.addProduct)
	sc.Step(`^I try to add product "([^"]*)" for (\d+) days starting "([^"]*)"$`, w.tryAddProduct)
	sc.Step(`^the cart has (\d+) lines?$`, w.cartHasLines)
	sc.Step(`^line (\d+) ends on "([^"]*)" at price "([^"]*)"$`, w.lineEndsOn)
	sc.Step(`^the cart subtotal is "([^"]*)"$`, w.cartSubtotalIs)
	sc.Step(`^I apply promo code "([^"]*)"$`, w.applyPromo)
	sc.Step(`^the promo message is "([^"]*)"$`, w.promoMessageIs)
	sc.Step(`^the discount is "([^"]*)"$`, w.discountIs)
	sc.Step(`^the grand total is "([^"]*)"$`, w.grandTotalIs)
	sc.Step(`^the cart grand total is "([^"]*)"$`, w.cartGrandTotalIs)
	sc.Step(`^I place the order$`, w.placeOrder)
	sc.Step(`^the confirmation total is "([^"]*)"$`, w.confirmationTotalIs)
	sc.Step(`^the cart is empty$`, w.cartIsEmpty)
	sc.Step(`^the cart service rejects removals$`, w.rejectRemovals)
	sc.Step(`^I remove line (\d+)$`, w.removeLine)
	sc.Step(`^the update is reported as out of sync$`, w.updateOutOfSync)
	sc.Step(`^the request fails on field "([^"]*)"$`, w.requestFailsOnField)
	sc.Step(`^the cart service received no items$`, w.noItemsReceived)
}

func (w *storefrontWorld) todayIs(date string) error {
	d, err := rental.ParseDate(date)
	if err != nil {
		return err
	}
	w.clock.Set(d.Time().Add(9 * time.Hour))
	return nil
}

func (w *storefrontWorld) catalogListsProduct(id string, plans *godog.Table) error {
	opts := make([]rental.RentalOption, 0, len(plans.Rows))
	for _, row := range plans.Rows[1:] {
		days, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		opt, err := rental.NewRentalOption(days, decimal.RequireFromString(row.Cells[1].Value))
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}
	p, err := builder.NewProductBuilder().WithID(id).WithOptions(opts...).BuildDomain()
	if err != nil {
		return err
	}
	w.catalog.products[id] = p
	return nil
}

func (w *storefrontWorld) signedIn() error {
	w.sess = builder.NewSessionBuilder().
		WithExpiry(w.clock.Now(), time.Hour).
		BuildDomain()
	return nil
}

func (w *storefrontWorld) addProduct(id string, days int, start string) error {
	view, err := w.cartUC.AddRental(w.ctx, w.sess, usecase.AddRentalInput{
		ProductID:    id,
		DurationDays: days,
		StartDate:    start,
	})
	if err != nil {
		return err
	}
	w.view = view
	return nil
}

func (w *storefrontWorld) tryAddProduct(id string, days int, start string) error {
	w.lastErr = w.addProduct(id, days, start)
	return nil
}

func (w *storefrontWorld) currentCart() (*usecase.CartView, error) {
	view, err := w.checkoutUC.Summary(w.ctx, w.sess)
	if err != nil {
		return nil, err
	}
	w.view = view
	return view, nil
}

func (w *storefrontWorld) cartHasLines(n int) error {
	view, err := w.currentCart()
	if err != nil {
		return err
	}
	if len(view.Items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(view.Items))
	}
	return nil
}

func (w *storefrontWorld) lineEndsOn(n int, end, price string) error {
	if n < 1 || n > len(w.view.Items) {
		return fmt.Errorf("no line %d", n)
	}
	li := w.view.Items[n-1]
	if li.EndDate.String() != end {
		return fmt.Errorf("expected end %s, got %s", end, li.EndDate)
	}
	if !li.UnitPrice.Equal(decimal.RequireFromString(price)) {
		return fmt.Errorf("expected price %s, got %s", price, li.UnitPrice)
	}
	return nil
}

func (w *storefrontWorld) cartSubtotalIs(amount string) error {
	view, err := w.currentCart()
	if err != nil {
		return err
	}
	return expectAmount("subtotal", amount, view.Totals.Subtotal)
}

func (w *storefrontWorld) applyPromo(code string) error {
	out, err := w.promotionUC.Apply(w.ctx, w.sess, code)
	if err != nil {
		return err
	}
	w.outcome = out
	return nil
}

func (w *storefrontWorld) promoMessageIs(msg string) error {
	if w.outcome.Result.Message != msg {
		return fmt.Errorf("expected message %q, got %q", msg, w.outcome.Result.Message)
	}
	return nil
}

func (w *storefrontWorld) discountIs(amount string) error {
	return expectAmount("discount", amount, w.outcome.Totals.DiscountAmount)
}

func (w *storefrontWorld) grandTotalIs(amount string) error {
	return expectAmount("grand total", amount, w.outcome.Totals.GrandTotal)
}

func (w *storefrontWorld) cartGrandTotalIs(amount string) error {
	view, err := w.currentCart()
	if err != nil {
		return err
	}
	return expectAmount("cart grand total", amount, view.Totals.GrandTotal)
}

func (w *storefrontWorld) placeOrder() error {
	conf, err := w.checkoutUC.PlaceOrder(w.ctx, w.sess, "")
	if err != nil {
		return err
	}
	w.conf = conf
	return nil
}

func (w *storefrontWorld) confirmationTotalIs(amount string) error {
	return expectAmount("confirmation total", amount, w.conf.Totals.GrandTotal)
}

func (w *storefrontWorld) cartIsEmpty() error {
	return w.cartHasLines(0)
}

func (w *storefrontWorld) rejectRemovals() error {
	w.carts.setRejectRemovals(true)
	return nil
}

func (w *storefrontWorld) removeLine(n int) error {
	view, err := w.currentCart()
	if err != nil {
		return err
	}
	if n < 1 || n > len(view.Items) {
		return fmt.Errorf("no line %d", n)
	}
	_, w.lastErr = w.cartUC.RemoveLineItem(w.ctx, w.sess, view.Items[n-1].ID)
	return nil
}

func (w *storefrontWorld) updateOutOfSync() error {
	if !errs.IsSync(w.lastErr) {
		return fmt.Errorf("expected a sync error, got %v", w.lastErr)
	}
	return nil
}

func (w *storefrontWorld) requestFailsOnField(field string) error {
	var verr *errs.ValidationError
	if !errors.As(w.lastErr, &verr) {
		return fmt.Errorf("expected a validation error, got %v", w.lastErr)
	}
	if verr.Field != field {
		return fmt.Errorf("expected field %s, got %s", field, verr.Field)
	}
	return nil
}

func (w *storefrontWorld) noItemsReceived() error {
	if n := w.carts.added(); n != 0 {
		return fmt.Errorf("cart service received %d items", n)
	}
	return nil
}

func expectAmount(name, want string, got decimal.Decimal) error {
	if pricing.FormatAmount(got) != want {
		return fmt.Errorf("expected %s %s, got %s", name, want, pricing.FormatAmount(got))
	}
	return nil
}

// Fakes standing in for the storefront backend.

type fakeCatalog struct {
	products map[string]*product.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errs.NewNotFound("product", id)
	}
	return p, nil
}

type fakeCartService struct {
	mu       sync.Mutex
	catalog  *fakeCatalog
	lines    map[string][]cart.LineItem
	seq      int
	rejectRm bool
}

func (f *fakeCartService) GetCart(_ context.Context, token string) ([]cart.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cart.LineItem(nil), f.lines[token]...), nil
}

func (f *fakeCartService) AddItem(ctx context.Context, token string, req usecase.AddItemRequest) (cart.LineItem, error) {
	p, err := f.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return cart.LineItem{}, err
	}
	opts := p.Options()
	if req.OptionIndex < 0 || req.OptionIndex >= len(opts) {
		return cart.LineItem{}, errs.NewValidation("optionIndex", "out of range")
	}
	opt := opts[req.OptionIndex]

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	item := cart.LineItem{
		ID:           "line-" + strconv.Itoa(f.seq),
		ProductID:    p.ID(),
		Title:        p.Title(),
		DurationDays: opt.DurationDays,
		StartDate:    req.StartDate,
		EndDate:      rental.EndDateFor(req.StartDate, opt.DurationDays),
		UnitPrice:    opt.Price,
		Quantity:     1,
	}
	f.lines[token] = append(f.lines[token], item)
	return item, nil
}

func (f *fakeCartService) RemoveItem(_ context.Context, token, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejectRm {
		return errs.Mark(errs.New("remove rejected"), errs.ErrBackendUnavailable)
	}
	items := f.lines[token]
	for i, it := range items {
		if it.ID == itemID {
			f.lines[token] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound("line item", itemID)
}

func (f *fakeCartService) setRejectRemovals(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectRm = v
}

func (f *fakeCartService) added() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

func (f *fakeCartService) empty(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lines, token)
}

type fakeOrderService struct {
	carts *fakeCartService
	seq   int
}

func (f *fakeOrderService) CreateOrder(_ context.Context, token, _ string) (*usecase.PlacedOrder, error) {
	f.seq++
	f.carts.empty(token)
	return &usecase.PlacedOrder{
		ID:          "ord-" + strconv.Itoa(f.seq),
		OrderNumber: fmt.Sprintf("R-%04d", f.seq),
		Status:      order.StatusPlaced,
	}, nil
}

func (f *fakeOrderService) ListOrders(context.Context, string) ([]*order.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) GetOrder(_ context.Context, _ string, id string) (*order.Order, error) {
	return nil, errs.NewNotFound("order", id)
}

func (f *fakeOrderService) CancelOrder(_ context.Context, _ string, id string) (*order.Order, error) {
	return nil, errs.NewNotFound("order", id)
}

type fakeUnitOfWork struct {
	redemptions fakeRedemptions
}

func (f *fakeUnitOfWork) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, f)
}

func (f *fakeUnitOfWork) WithDB(ctx context.Context, fn func(context.Context, shared.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUnitOfWork) Redemptions() shared.RedemptionRepository { return &f.redemptions }
func (f *fakeUnitOfWork) DB() shared.DBTX                          { return nil }

type fakeRedemptions struct {
	recorded []shared.Redemption
}

func (f *fakeRedemptions) Record(_ context.Context, _ shared.DBTX, r shared.Redemption) error {
	f.recorded = append(f.recorded, r)
	return nil
}

func (f *fakeRedemptions) CountByCode(_ context.Context, _ shared.DBTX, code string) (int64, error) {
	var n int64
	for _, r := range f.recorded {
		if r.Code == code {
			n++
		}
	}
	return n, nil
}
