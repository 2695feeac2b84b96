package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// UserRepositoryStub stores users and role grants in-memory for tests.
type UserRepositoryStub struct {
	mu     sync.Mutex
	Users  map[string]*model.User
	ByID   map[string]*model.User
	Grants map[string]map[string]bool
	Next   int
	Err    error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:  make(map[string]*model.User),
		ByID:   make(map[string]*model.User),
		Grants: make(map[string]map[string]bool),
		Next:   1,
	}
}

func (s *UserRepositoryStub) create(user *model.User) error {
	if _, exists := s.Users[user.Email]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", s.Next)
		s.Next++
	}
	user.CreatedAt = time.Now()
	stored := *user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return nil
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	return s.create(user)
}

// CreateWithRole registers user and grants role unless any user already holds it.
func (s *UserRepositoryStub) CreateWithRole(ctx context.Context, user *model.User, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, roles := range s.Grants {
		if roles[role] {
			return domainErrors.ErrAlreadyExists
		}
	}
	if err := s.create(user); err != nil {
		return err
	}
	s.grant(user.ID, role)
	return nil
}

// Grant assigns role to userID.
func (s *UserRepositoryStub) Grant(userID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grant(userID, role)
}

func (s *UserRepositoryStub) grant(userID, role string) {
	if s.Grants[userID] == nil {
		s.Grants[userID] = make(map[string]bool)
	}
	s.Grants[userID][role] = true
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// HasRole reports grants recorded by CreateWithRole or Grant.
func (s *UserRepositoryStub) HasRole(ctx context.Context, userID, role string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.Grants[userID][role], nil
}

// OrderRepositoryStub keeps orders in-memory; Fn overrides take precedence.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order
	Next   int

	CreateErr       error
	GetErr          error
	MarkErr         error
	CompletedCalls  []string
	MarkCompletedFn func(context.Context, string) error
}

// NewOrderRepositoryStub constructs an empty order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
}

// Put stores a copy of order as is.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	s.Orders[order.ID] = &order
}

// Count returns number of stored orders.
func (s *OrderRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}

// Create stores order rejecting duplicate session references.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	for _, existing := range s.Orders {
		if existing.CheckoutSessionID == order.CheckoutSessionID {
			return domainErrors.ErrAlreadyExists
		}
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", s.Next)
		s.Next++
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	stored := *order
	s.Orders[order.ID] = &stored
	return nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if o, ok := s.Orders[id]; ok {
		order := *o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetBySessionID matches session reference exactly.
func (s *OrderRepositoryStub) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, o := range s.Orders {
		if o.CheckoutSessionID == sessionID {
			order := *o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkCompleted flips status and records the call.
func (s *OrderRepositoryStub) MarkCompleted(ctx context.Context, id string) error {
	if s.MarkCompletedFn != nil {
		return s.MarkCompletedFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CompletedCalls = append(s.CompletedCalls, id)
	if s.MarkErr != nil {
		return s.MarkErr
	}
	o, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = model.OrderStatusCompleted
	return nil
}

// IntakeRepositoryStub keeps intakes in-memory and joins them with Orders.
type IntakeRepositoryStub struct {
	mu      sync.Mutex
	Orders  *OrderRepositoryStub
	Intakes map[string]*model.Intake
	Next    int

	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error
	Updates   []model.IntakeUpdate
}

// NewIntakeRepositoryStub constructs stub bound to orders for joins and FK checks.
func NewIntakeRepositoryStub(orders *OrderRepositoryStub) *IntakeRepositoryStub {
	return &IntakeRepositoryStub{Orders: orders, Intakes: make(map[string]*model.Intake), Next: 1}
}

// Count returns number of stored intakes.
func (s *IntakeRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Intakes)
}

// Create stores intake when its order exists.
func (s *IntakeRepositoryStub) Create(ctx context.Context, intake *model.Intake) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if s.Orders != nil {
		if _, err := s.Orders.GetByID(ctx, intake.OrderID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if intake.ID == "" {
		intake.ID = fmt.Sprintf("00000000-0000-4000-9000-%012d", s.Next)
	}
	// Monotonic timestamps keep newest-first ordering deterministic.
	intake.CreatedAt = time.Unix(int64(s.Next), 0)
	s.Next++
	stored := *intake
	s.Intakes[intake.ID] = &stored
	return nil
}

func (s *IntakeRepositoryStub) join(ctx context.Context, intake *model.Intake) model.IntakeWithOrder {
	row := model.IntakeWithOrder{Intake: *intake}
	if s.Orders != nil {
		if order, err := s.Orders.GetByID(ctx, intake.OrderID); err == nil {
			row.Order = *order
		}
	}
	return row
}

// GetByID returns the joined row.
func (s *IntakeRepositoryStub) GetByID(ctx context.Context, id string) (*model.IntakeWithOrder, error) {
	s.mu.Lock()
	intake, ok := s.Intakes[id]
	var copyIntake model.Intake
	if ok {
		copyIntake = *intake
	}
	s.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	row := s.join(ctx, &copyIntake)
	return &row, nil
}

// ListWithOrders returns joined rows newest first.
func (s *IntakeRepositoryStub) ListWithOrders(ctx context.Context) ([]model.IntakeWithOrder, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	items := make([]model.Intake, 0, len(s.Intakes))
	for _, intake := range s.Intakes {
		items = append(items, *intake)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	rows := make([]model.IntakeWithOrder, 0, len(items))
	for i := range items {
		rows = append(rows, s.join(ctx, &items[i]))
	}
	return rows, nil
}

// Update applies non-nil fields.
func (s *IntakeRepositoryStub) Update(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, update)
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	intake, ok := s.Intakes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&intake.FirstName, update.FirstName)
	apply(&intake.LastName, update.LastName)
	apply(&intake.Email, update.Email)
	apply(&intake.Phone, update.Phone)
	apply(&intake.LinkedInURL, update.LinkedInURL)
	apply(&intake.JobDescription, update.JobDescription)
	apply(&intake.AdditionalNotes, update.AdditionalNotes)
	result := *intake
	return &result, nil
}

// Delete removes intake by id.
func (s *IntakeRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.Intakes[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Intakes, id)
	return nil
}
