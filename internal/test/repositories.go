package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// StaffRepositoryStub stores staff accounts in-memory for tests.
type StaffRepositoryStub struct {
	Staff map[string]*model.StaffUser
	ByID  map[int64]*model.StaffUser
	Next  int64
	Err   error
}

// NewStaffRepositoryStub constructs stub repository with initialized maps.
func NewStaffRepositoryStub() *StaffRepositoryStub {
	return &StaffRepositoryStub{
		Staff: make(map[string]*model.StaffUser),
		ByID:  make(map[int64]*model.StaffUser),
		Next:  1,
	}
}

// Create registers a staff account unless it already exists.
func (s *StaffRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Staff == nil {
		s.Staff = make(map[string]*model.StaffUser)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.StaffUser)
	}
	if _, exists := s.Staff[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	staff := &model.StaffUser{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Staff[login] = staff
	s.ByID[staff.ID] = staff
	return staff, nil
}

// GetByLogin fetches a staff account by login or returns not found.
func (s *StaffRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if staff, ok := s.Staff[login]; ok {
		return staff, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a staff account by identifier or returns not found.
func (s *StaffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if staff, ok := s.ByID[id]; ok {
		return staff, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CustomerRepositoryStub upserts customers keyed by phone.
type CustomerRepositoryStub struct {
	UpsertFn  func(context.Context, model.Customer) (*model.Customer, error)
	ByPhone   map[string]*model.Customer
	ByID      map[int64]*model.Customer
	Next      int64
	Err       error
	Upserted  []model.Customer
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		ByPhone: make(map[string]*model.Customer),
		ByID:    make(map[int64]*model.Customer),
		Next:    1,
	}
}

// UpsertByPhone creates or refreshes a customer keyed by phone.
func (s *CustomerRepositoryStub) UpsertByPhone(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	s.Upserted = append(s.Upserted, customer)
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, customer)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByPhone == nil {
		s.ByPhone = make(map[string]*model.Customer)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Customer)
	}
	if existing, ok := s.ByPhone[customer.Phone]; ok {
		updated := customer
		updated.ID = existing.ID
		s.ByPhone[customer.Phone] = &updated
		s.ByID[updated.ID] = &updated
		return &updated, nil
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := customer
	created.ID = s.Next
	s.Next++
	s.ByPhone[created.Phone] = &created
	s.ByID[created.ID] = &created
	return &created, nil
}

// GetByID fetches a customer or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if customer, ok := s.ByID[id]; ok {
		return customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub stores catalog items in-memory for tests.
type ProductRepositoryStub struct {
	CreateFn func(context.Context, model.Product) (*model.Product, error)
	UpdateFn func(context.Context, int64, repository.ProductUpdate) (*model.Product, error)
	ListFn   func(context.Context, repository.ProductFilter) ([]model.Product, error)

	Products map[int64]*model.Product
	Next     int64
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Add seeds the stub with a product and returns it.
func (s *ProductRepositoryStub) Add(product model.Product) *model.Product {
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	if product.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		product.ID = s.Next
		s.Next++
	}
	stored := product
	s.Products[stored.ID] = &stored
	return &stored
}

// Create stores the product unless the SKU is taken.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.Products {
		if existing.SKU == product.SKU {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	return s.Add(product), nil
}

// Update applies the partial update or returns not found.
func (s *ProductRepositoryStub) Update(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}
	return product, nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetActiveBySKU fetches an active product by SKU or returns not found.
func (s *ProductRepositoryStub) GetActiveBySKU(ctx context.Context, sku string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, product := range s.Products {
		if product.SKU == sku && product.IsActive {
			return product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored products, honoring the active filter.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, product := range s.Products {
		if filter.OnlyActive && !product.IsActive {
			continue
		}
		if filter.SKU != "" && product.SKU != filter.SKU {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

// LedgerCall records one inventory ledger invocation.
type LedgerCall struct {
	Op    string
	Items []model.StockItem
}

// InventoryLedgerStub records reserve and release calls.
type InventoryLedgerStub struct {
	ReserveFn func(context.Context, []model.StockItem) error
	ReleaseFn func(context.Context, []model.StockItem) error
	Calls     []LedgerCall
	Err       error
}

// Reserve records the call and returns the configured error.
func (s *InventoryLedgerStub) Reserve(ctx context.Context, items []model.StockItem) error {
	s.Calls = append(s.Calls, LedgerCall{Op: "reserve", Items: items})
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, items)
	}
	return s.Err
}

// Release records the call and returns the configured error.
func (s *InventoryLedgerStub) Release(ctx context.Context, items []model.StockItem) error {
	s.Calls = append(s.Calls, LedgerCall{Op: "release", Items: items})
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, items)
	}
	return s.Err
}

// TransitionCall stores information about Transition invocations.
type TransitionCall struct {
	OrderID     int64
	Target      model.StandardOrderStatus
	AllowedPrev []model.StandardOrderStatus
	Effect      model.StockEffect
}

// StandardOrderRepositoryStub allows tests to customize behaviour.
type StandardOrderRepositoryStub struct {
	CreateFn     func(context.Context, int64, []repository.NewStandardOrderItem, string, string) (*model.StandardOrder, error)
	GetByIDFn    func(context.Context, int64) (*model.StandardOrder, error)
	ListFn       func(context.Context, repository.StandardOrderFilter) ([]model.StandardOrder, error)
	TransitionFn func(context.Context, int64, model.StandardOrderStatus, []model.StandardOrderStatus, model.StockEffect) (*model.StandardOrder, error)
	UpdateTotalFn func(context.Context, int64) (*model.StandardOrder, error)

	Orders      map[int64]*model.StandardOrder
	Transitions []TransitionCall
	Next        int64
	Err         error
}

// NewStandardOrderRepositoryStub constructs stub repository with initialized map.
func NewStandardOrderRepositoryStub() *StandardOrderRepositoryStub {
	return &StandardOrderRepositoryStub{Orders: make(map[int64]*model.StandardOrder), Next: 1}
}

// Add seeds the stub with an order and returns it.
func (s *StandardOrderRepositoryStub) Add(order model.StandardOrder) *model.StandardOrder {
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.StandardOrder)
	}
	if order.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = s.Next
		s.Next++
	}
	stored := order
	s.Orders[stored.ID] = &stored
	return &stored
}

// Create stores a new order with the requested items.
func (s *StandardOrderRepositoryStub) Create(ctx context.Context, customerID int64, items []repository.NewStandardOrderItem, currency, pickupNotes string) (*model.StandardOrder, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerID, items, currency, pickupNotes)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order := model.StandardOrder{
		CustomerID:  customerID,
		Status:      model.StandardOrderStatusNew,
		Currency:    currency,
		PickupNotes: pickupNotes,
		Total:       decimal.Zero,
	}
	for i, item := range items {
		order.Items = append(order.Items, model.StandardOrderItem{
			ProductID: int64(i + 1),
			SKU:       item.SKU,
			Qty:       item.Qty,
			UnitPrice: decimal.Zero,
		})
	}
	return s.Add(order), nil
}

// GetByID fetches an order or returns not found.
func (s *StandardOrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.StandardOrder, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored orders matching the filter.
func (s *StandardOrderRepositoryStub) List(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.StandardOrder, 0, len(s.Orders))
	for _, order := range s.Orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

// Transition records the call and applies the status change to the stored
// order when the current status is allowed.
func (s *StandardOrderRepositoryStub) Transition(ctx context.Context, id int64, target model.StandardOrderStatus, allowedPrev []model.StandardOrderStatus, effect model.StockEffect) (*model.StandardOrder, error) {
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: id, Target: target, AllowedPrev: allowedPrev, Effect: effect})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, id, target, allowedPrev, effect)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	allowed := false
	for _, prev := range allowedPrev {
		if order.Status == prev {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domainErrors.ErrInvalidTransition
	}
	order.Status = target
	return order, nil
}

// UpdateTotal recomputes the stored order total from its items.
func (s *StandardOrderRepositoryStub) UpdateTotal(ctx context.Context, id int64) (*model.StandardOrder, error) {
	if s.UpdateTotalFn != nil {
		return s.UpdateTotalFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Total = order.ItemsTotal()
	return order, nil
}

// ReplaceQuoteCall stores information about ReplaceQuote invocations.
type ReplaceQuoteCall struct {
	OrderID  int64
	Lines    []model.CustomOrderLine
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// CustomOrderRepositoryStub allows tests to customize behaviour.
type CustomOrderRepositoryStub struct {
	CreateFn    func(context.Context, int64, repository.CustomOrderDraft, string) (*model.CustomOrder, error)
	GetByIDFn   func(context.Context, int64) (*model.CustomOrder, error)
	ListFn      func(context.Context, repository.CustomOrderFilter) ([]model.CustomOrder, error)
	SetStatusFn func(context.Context, int64, model.CustomOrderStatus, []model.CustomOrderStatus) (*model.CustomOrder, error)
	ReplaceFn   func(context.Context, int64, []model.CustomOrderLine, decimal.Decimal, decimal.Decimal, decimal.Decimal) (*model.CustomOrder, error)
	SelectFn    func(context.Context, int) ([]model.CustomOrder, error)

	Orders        map[int64]*model.CustomOrder
	Replaced      []ReplaceQuoteCall
	DocumentURLs  map[int64]string
	Next          int64
	Err           error
}

// NewCustomOrderRepositoryStub constructs stub repository with initialized maps.
func NewCustomOrderRepositoryStub() *CustomOrderRepositoryStub {
	return &CustomOrderRepositoryStub{
		Orders:       make(map[int64]*model.CustomOrder),
		DocumentURLs: make(map[int64]string),
		Next:         1,
	}
}

// Add seeds the stub with an order and returns it.
func (s *CustomOrderRepositoryStub) Add(order model.CustomOrder) *model.CustomOrder {
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.CustomOrder)
	}
	if order.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = s.Next
		s.Next++
	}
	stored := order
	s.Orders[stored.ID] = &stored
	return &stored
}

// Create stores a new installation request.
func (s *CustomOrderRepositoryStub) Create(ctx context.Context, customerID int64, draft repository.CustomOrderDraft, currency string) (*model.CustomOrder, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerID, draft, currency)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Add(model.CustomOrder{
		CustomerID:           customerID,
		Status:               model.CustomOrderStatusNew,
		RequirementSummary:   draft.RequirementSummary,
		SiteAddress:          draft.SiteAddress,
		SiteCity:             draft.SiteCity,
		SiteGeoLat:           draft.SiteGeoLat,
		SiteGeoLng:           draft.SiteGeoLng,
		PreferredContactTime: draft.PreferredContactTime,
		Currency:             currency,
	}), nil
}

// GetByID fetches an order or returns not found.
func (s *CustomOrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.CustomOrder, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored orders matching the filter.
func (s *CustomOrderRepositoryStub) List(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.CustomOrder, 0, len(s.Orders))
	for _, order := range s.Orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.City != "" && order.SiteCity != filter.City {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

// SetStatus applies the transition when the current status is allowed.
func (s *CustomOrderRepositoryStub) SetStatus(ctx context.Context, id int64, target model.CustomOrderStatus, allowedPrev []model.CustomOrderStatus) (*model.CustomOrder, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, target, allowedPrev)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	allowed := false
	for _, prev := range allowedPrev {
		if order.Status == prev {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domainErrors.ErrInvalidTransition
	}
	order.Status = target
	return order, nil
}

// ReplaceQuote swaps the line set and quote figures, moving the order to
// quote_sent and clearing any rendered document reference.
func (s *CustomOrderRepositoryStub) ReplaceQuote(ctx context.Context, id int64, lines []model.CustomOrderLine, subtotal, discount, total decimal.Decimal) (*model.CustomOrder, error) {
	s.Replaced = append(s.Replaced, ReplaceQuoteCall{OrderID: id, Lines: lines, Subtotal: subtotal, Discount: discount, Total: total})
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, id, lines, subtotal, discount, total)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Lines = lines
	order.QuoteSubtotal = &subtotal
	order.QuoteDiscount = &discount
	order.QuoteTotal = &total
	order.QuoteDocumentURL = ""
	order.Status = model.CustomOrderStatusQuoteSent
	return order, nil
}

// SetQuoteDocumentURL records the rendered document URL.
func (s *CustomOrderRepositoryStub) SetQuoteDocumentURL(ctx context.Context, id int64, url string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if s.DocumentURLs == nil {
		s.DocumentURLs = make(map[int64]string)
	}
	s.DocumentURLs[id] = url
	order.QuoteDocumentURL = url
	return nil
}

// SelectQuotesForRendering returns sent quotes still missing a document.
func (s *CustomOrderRepositoryStub) SelectQuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.CustomOrder, 0, limit)
	for _, order := range s.Orders {
		if len(out) == limit {
			break
		}
		if order.Status == model.CustomOrderStatusQuoteSent && order.QuoteDocumentURL == "" {
			out = append(out, *order)
		}
	}
	return out, nil
}
