//go:build e2e

// Package fakebackend is an in-memory stand-in for the storefront REST
// backend. It owns catalog, carts, orders and auth the way the real service
// does, so e2e tests exercise the HTTP client end to end.
package fakebackend

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultEmail    = "test@example.com"
	DefaultPassword = "password123"
	ProductID       = "p1"
)

type Account struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	Role        string
}

type option struct {
	Days  int             `json:"days"`
	Price decimal.Decimal `json:"price"`
}

type product struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	RentalOptions   []option        `json:"rentalOptions"`
	Images          []string        `json:"images"`
}

type lineItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"imageUrl"`
	DurationDays int             `json:"durationDays"`
	StartDate    string          `json:"startDate"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
}

type orderRecord struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Items       []lineItem      `json:"items"`
	TotalDue    decimal.Decimal `json:"totalDue"`
	PlacedAt    string          `json:"placedAt"`
}

type fault struct {
	method string
	prefix string
	status int
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]Account
	tokens    map[string]string // token -> account id
	products  map[string]product
	carts     map[string][]lineItem
	orders    map[string][]*orderRecord
	byKey     map[string]*orderRecord
	seq       int
	faults    []fault
	orderKeys []string
}

func New() *Server {
	s := &Server{}
	s.Reset()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.injectFaults())

	r.POST("/auth/login", s.login)
	r.POST("/auth/logout", s.authed(s.logout))
	r.GET("/auth/profile", s.authed(s.profile))
	r.GET("/products/:id", s.getProduct)
	r.GET("/cart", s.authed(s.getCart))
	r.POST("/cart/items", s.authed(s.addItem))
	r.DELETE("/cart/items/:id", s.authed(s.removeItem))
	r.POST("/orders", s.authed(s.createOrder))
	r.GET("/orders", s.authed(s.listOrders))
	r.GET("/orders/:id", s.authed(s.getOrder))
	r.POST("/orders/:id/cancel", s.authed(s.cancelOrder))

	s.Server = httptest.NewServer(r)
	return s
}

// Reset restores the seeded account and catalog and drops all carts, orders,
// tokens and faults.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = map[string]Account{
		DefaultEmail: {ID: "user-1", Email: DefaultEmail, Password: DefaultPassword, DisplayName: "Test User", Role: "customer"},
	}
	s.tokens = map[string]string{}
	s.products = map[string]product{
		ProductID: {
			ID:              ProductID,
			Title:           "Wooden Train Set",
			Description:     "Forty-piece train set",
			OriginalPrice:   decimal.RequireFromString("1200"),
			DiscountedPrice: decimal.RequireFromString("900"),
			RentalOptions: []option{
				{Days: 7, Price: decimal.RequireFromString("600")},
				{Days: 3, Price: decimal.RequireFromString("300")},
				{Days: 15, Price: decimal.RequireFromString("900")},
			},
			Images: []string{"https://img.example.com/p1.jpg"},
		},
	}
	s.carts = map[string][]lineItem{}
	s.orders = map[string][]*orderRecord{}
	s.byKey = map[string]*orderRecord{}
	s.orderKeys = nil
	s.seq = 0
	s.faults = nil
}

// FailNext makes the next request whose method matches and whose path starts
// with prefix answer status instead.
func (s *Server) FailNext(method, prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, prefix: prefix, status: status})
}

// CartSize reports the server-side cart of the default account.
func (s *Server) CartSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[s.accounts[DefaultEmail].ID])
}

// OrderKeys returns the Idempotency-Key of every order request received.
func (s *Server) OrderKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.orderKeys...)
}

// SetOrderStatus moves an order of the default account, as fulfilment would.
func (s *Server) SetOrderStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders[s.accounts[DefaultEmail].ID] {
		if o.ID == id {
			o.Status = status
		}
	}
}

func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		for i, f := range s.faults {
			if f.method == c.Request.Method && strings.HasPrefix(c.Request.URL.Path, f.prefix) {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				s.mu.Unlock()
				c.AbortWithStatusJSON(f.status, gin.H{"message": "injected failure"})
				return
			}
		}
		s.mu.Unlock()
		c.Next()
	}
}

const ctxAccount = "account"

func (s *Server) authed(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		s.mu.Lock()
		id, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
			return
		}
		c.Set(ctxAccount, id)
		next(c)
	}
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[strings.ToLower(body.Email)]
	if !ok || acct.Password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	token := uuid.NewString()
	s.tokens[token] = acct.ID
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) profile(c *gin.Context) {
	id := c.GetString(ctxAccount)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			c.JSON(http.StatusOK, gin.H{"id": a.ID, "email": a.Email, "displayName": a.DisplayName, "role": a.Role})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": "unknown account"})
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	p, ok := s.products[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	items := append([]lineItem{}, s.carts[c.GetString(ctxAccount)]...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) addItem(c *gin.Context) {
	var body struct {
		ProductID   string `json:"productId"`
		OptionIndex int    `json:"optionIndex"`
		StartDate   string `json:"startDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[body.ProductID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	if body.OptionIndex < 0 || body.OptionIndex >= len(p.RentalOptions) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown rental option"})
		return
	}
	if _, err := time.Parse(time.DateOnly, body.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "startDate must be YYYY-MM-DD"})
		return
	}

	s.seq++
	opt := p.RentalOptions[body.OptionIndex]
	item := lineItem{
		ID:           fmt.Sprintf("line-%d", s.seq),
		ProductID:    p.ID,
		Title:        p.Title,
		ImageURL:     p.Images[0],
		DurationDays: opt.Days,
		StartDate:    body.StartDate,
		UnitPrice:    opt.Price,
		Quantity:     1,
	}
	id := c.GetString(ctxAccount)
	s.carts[id] = append(s.carts[id], item)
	c.JSON(http.StatusCreated, item)
}

func (s *Server) removeItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.GetString(ctxAccount)
	items := s.carts[id]
	for i, it := range items {
		if it.ID == c.Param("id") {
			s.carts[id] = append(items[:i:i], items[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "line item not found"})
}

// createOrder replays the first order placed under the same Idempotency-Key.
func (s *Server) createOrder(c *gin.Context) {
	key := c.GetHeader("Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderKeys = append(s.orderKeys, key)
	if o, ok := s.byKey[key]; ok && key != "" {
		c.JSON(http.StatusCreated, o)
		return
	}

	id := c.GetString(ctxAccount)
	items := s.carts[id]
	if len(items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "cart is empty"})
		return
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	s.seq++
	o := &orderRecord{
		ID:          fmt.Sprintf("ord-%d", s.seq),
		OrderNumber: fmt.Sprintf("R-%04d", 1000+s.seq),
		Status:      "PLACED",
		Items:       items,
		TotalDue:    total,
		PlacedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	s.orders[id] = append([]*orderRecord{o}, s.orders[id]...)
	s.carts[id] = nil
	if key != "" {
		s.byKey[key] = o
	}
	c.JSON(http.StatusCreated, o)
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]orderRecord, 0, len(s.orders[c.GetString(ctxAccount)]))
	for _, o := range s.orders[c.GetString(ctxAccount)] {
		out = append(out, *o)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) findOrder(c *gin.Context) *orderRecord {
	for _, o := range s.orders[c.GetString(ctxAccount)] {
		if o.ID == c.Param("id") {
			return o
		}
	}
	return nil
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(c)
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) cancelOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(c)
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if o.Status != "PLACED" && o.Status != "CONFIRMED" {
		c.JSON(http.StatusConflict, gin.H{"message": "order can no longer be cancelled"})
		return
	}
	o.Status = "CANCELLED"
	c.Status(http.StatusNoContent)
}
