package subscription

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Service enforces subscription business rules over a Store.
//
// One mutex serializes every operation end to end, so the read-validate-write
// cycle (including NextIndex) is atomic with respect to other mutations.
// Reads take the same lock to observe a consistent snapshot; request volume
// does not warrant finer grain.
type Service struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) ServiceOption {
	if now == nil {
		panic("WithClock: nil clock")
	}
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. Panics on a nil store to fail fast during
// initialization.
func NewService(store Store, opts ...ServiceOption) *Service {
	if store == nil {
		panic("subscription: Store is required")
	}
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddParams are the inputs for creating a subscription. EndDate is an
// ISO 8601 string as received on the wire.
type AddParams struct {
	ClientName  string
	ProductName string
	EndDate     string
	LicenseKey  *string
}

// Add validates the input, assigns the next index, and persists the record.
//
// Validation: client and product names must be non-empty after trimming, the
// product must exist in the product set, the end date must parse and must not
// be before today, and the (client, product) pair must not already have a
// subscription.
func (s *Service) Add(ctx context.Context, p AddParams) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := strings.TrimSpace(p.ClientName)
	product := strings.TrimSpace(p.ProductName)
	if client == "" {
		return Subscription{}, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if product == "" {
		return Subscription{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	end, err := ParseDate(p.EndDate)
	if err != nil {
		return Subscription{}, err
	}
	if today := DateOf(s.now()); end.Before(today) {
		return Subscription{}, fmt.Errorf("%w: end date %s is before today", ErrInvalidInput, end)
	}

	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return Subscription{}, err
	}
	if !slices.Contains(products, product) {
		return Subscription{}, fmt.Errorf("%w: %q", ErrProductNotFound, product)
	}

	subs, err := s.store.LoadSubscriptions(ctx)
	if err != nil {
		return Subscription{}, err
	}
	for _, sub := range subs {
		if sub.ClientName == client && sub.ProductName == product {
			return Subscription{}, fmt.Errorf("%w: %q / %q", ErrDuplicateSubscription, client, product)
		}
	}

	record := Subscription{
		Index:       NextIndex(subs),
		ClientName:  client,
		ProductName: product,
		EndDate:     end,
		LicenseKey:  p.LicenseKey,
	}
	if err := s.store.SaveSubscriptions(ctx, append(subs, record)); err != nil {
		return Subscription{}, err
	}
	return record, nil
}

// List returns all subscriptions in persisted order.
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadSubscriptions(ctx)
}

// Delete removes the record with the given index. Remaining records keep
// their indices.
func (s *Service) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.store.LoadSubscriptions(ctx)
	if err != nil {
		return err
	}

	pos := slices.IndexFunc(subs, func(sub Subscription) bool { return sub.Index == index })
	if pos < 0 {
		return fmt.Errorf("%w: index %d", ErrSubscriptionNotFound, index)
	}

	return s.store.SaveSubscriptions(ctx, slices.Delete(subs, pos, pos+1))
}

// RenewParams are the inputs for renewing a subscription. Two shapes are
// accepted:
//
//   - Index > 0 targets a record directly. NewEndDate replaces the end date,
//     AdditionalDays extends it, and NewClientName/NewProductName optionally
//     replace the stored names.
//   - Otherwise ClientName and ProductName locate the record and
//     AdditionalDays extends its end date.
type RenewParams struct {
	Index          int
	NewEndDate     string
	NewClientName  string
	NewProductName string

	ClientName     string
	ProductName    string
	AdditionalDays int
}

// Renew updates an existing record in place and returns the updated record.
// Renewal by added days composes: two renewals of 10 days equal one of 20.
func (s *Service) Renew(ctx context.Context, p RenewParams) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.AdditionalDays < 0 {
		return Subscription{}, fmt.Errorf("%w: additional days must not be negative", ErrInvalidInput)
	}

	subs, err := s.store.LoadSubscriptions(ctx)
	if err != nil {
		return Subscription{}, err
	}

	var pos int
	switch {
	case p.Index > 0:
		pos = slices.IndexFunc(subs, func(sub Subscription) bool { return sub.Index == p.Index })
		if pos < 0 {
			return Subscription{}, fmt.Errorf("%w: index %d", ErrSubscriptionNotFound, p.Index)
		}
	case strings.TrimSpace(p.ClientName) != "" && strings.TrimSpace(p.ProductName) != "":
		// Stored names are trimmed at creation, so match against trimmed input.
		client := strings.TrimSpace(p.ClientName)
		product := strings.TrimSpace(p.ProductName)
		pos = slices.IndexFunc(subs, func(sub Subscription) bool {
			return sub.ClientName == client && sub.ProductName == product
		})
		if pos < 0 {
			return Subscription{}, fmt.Errorf("%w: %q / %q", ErrSubscriptionNotFound, client, product)
		}
	default:
		return Subscription{}, fmt.Errorf("%w: an index or a client and product pair is required", ErrInvalidInput)
	}

	record := subs[pos]

	switch {
	case p.NewEndDate != "":
		end, err := ParseDate(p.NewEndDate)
		if err != nil {
			return Subscription{}, err
		}
		record.EndDate = end
	case p.AdditionalDays > 0:
		record.EndDate = record.EndDate.AddDays(p.AdditionalDays)
	default:
		return Subscription{}, fmt.Errorf("%w: a new end date or additional days is required", ErrInvalidInput)
	}

	if p.NewClientName != "" {
		record.ClientName = strings.TrimSpace(p.NewClientName)
	}
	if p.NewProductName != "" {
		record.ProductName = strings.TrimSpace(p.NewProductName)
	}

	// Name replacement must not collide with another record's pair.
	for i, sub := range subs {
		if i == pos {
			continue
		}
		if sub.ClientName == record.ClientName && sub.ProductName == record.ProductName {
			return Subscription{}, fmt.Errorf("%w: %q / %q", ErrDuplicateSubscription, record.ClientName, record.ProductName)
		}
	}

	subs[pos] = record
	if err := s.store.SaveSubscriptions(ctx, subs); err != nil {
		return Subscription{}, err
	}
	return record, nil
}

// Products returns the product name set in persisted order.
func (s *Service) Products(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadProducts(ctx)
}

// AddProduct adds a name to the product set.
func (s *Service) AddProduct(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(products, name) {
		return fmt.Errorf("%w: %q", ErrDuplicateProduct, name)
	}

	return s.store.SaveProducts(ctx, append(products, name))
}

// DeleteProduct removes a name from the product set. Existing subscriptions
// referencing the name are left untouched.
func (s *Service) DeleteProduct(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return err
	}

	pos := slices.Index(products, name)
	if pos < 0 {
		return fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}

	return s.store.SaveProducts(ctx, slices.Delete(products, pos, pos+1))
}

// NextIndex reports the index the next created subscription would receive.
func (s *Service) NextIndex(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.store.LoadSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	return NextIndex(subs), nil
}
