// Package memuow is an in-memory unitofwork.UnitOfWork for processor tests.
// It interprets the specification types the repositories understand and
// expands references the way the gorm scopes preload them.
package memuow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type tables struct {
	users         map[uuid.UUID]entity.User
	customers     map[uuid.UUID]entity.Customer
	photographers map[uuid.UUID]entity.Photographer
	packages      map[uuid.UUID]entity.Package
	services      map[uuid.UUID]entity.Service
	promos        map[uuid.UUID]entity.Promo
	bookings      map[uuid.UUID]entity.Booking
	transactions  map[uuid.UUID]entity.Transaction
	requests      map[uuid.UUID]entity.TransactionRequest
}

func newTables() tables {
	return tables{
		users:         map[uuid.UUID]entity.User{},
		customers:     map[uuid.UUID]entity.Customer{},
		photographers: map[uuid.UUID]entity.Photographer{},
		packages:      map[uuid.UUID]entity.Package{},
		services:      map[uuid.UUID]entity.Service{},
		promos:        map[uuid.UUID]entity.Promo{},
		bookings:      map[uuid.UUID]entity.Booking{},
		transactions:  map[uuid.UUID]entity.Transaction{},
		requests:      map[uuid.UUID]entity.TransactionRequest{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.customers {
		c.customers[k] = v
	}
	for k, v := range t.photographers {
		c.photographers[k] = v
	}
	for k, v := range t.packages {
		c.packages[k] = v
	}
	for k, v := range t.services {
		c.services[k] = v
	}
	for k, v := range t.promos {
		c.promos[k] = v
	}
	for k, v := range t.bookings {
		c.bookings[k] = v
	}
	for k, v := range t.transactions {
		c.transactions[k] = v
	}
	for k, v := range t.requests {
		c.requests[k] = v
	}
	return c
}

// Store is the shared "database". Every unit of work created from it sees
// the same rows.
type Store struct {
	mu   sync.Mutex
	data tables
	tick time.Time

	// Fail injects an error for one repository call, keyed like
	// "TransactionRepository.LinkRefund".
	Fail map[string]error
}

var _ unitofwork.RepositoryFactory = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data: newTables(),
		tick: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Fail: map[string]error{},
	}
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: s}
}

// now hands out strictly increasing timestamps so ordering is deterministic.
func (s *Store) now() time.Time {
	s.tick = s.tick.Add(time.Second)
	return s.tick
}

func (s *Store) fail(op string) error {
	return s.Fail[op]
}

// Seeding helpers

func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

func (s *Store) AddCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.customers[c.ID] = c
}

func (s *Store) AddPhotographer(p entity.Photographer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.photographers[p.ID] = p
}

func (s *Store) AddPackage(p entity.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.packages[p.ID] = p
}

func (s *Store) AddService(sv entity.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.services[sv.ID] = sv
}

func (s *Store) AddPromo(p entity.Promo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.promos[p.ID] = p
}

func (s *Store) AddBooking(b entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.bookings[b.ID] = stripBooking(b)
}

func (s *Store) AddTransaction(t entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
		t.UpdatedAt = t.CreatedAt
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = t.CreatedAt
	}
	s.data.transactions[t.ID] = stripTransaction(t)
}

func (s *Store) AddRequest(r entity.TransactionRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
		r.UpdatedAt = r.CreatedAt
	}
	s.data.requests[r.ID] = stripRequest(r)
}

// Transaction returns the stored row, unexpanded.
func (s *Store) Transaction(id uuid.UUID) (entity.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data.transactions[id]
	return t, ok
}

func (s *Store) Request(id uuid.UUID) (entity.TransactionRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.requests[id]
	return r, ok
}

func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.transactions)
}

// Rows are stored with bare references; expansion happens on read.

func stripBooking(b entity.Booking) entity.Booking {
	b.Customer = entity.RefTo[entity.Customer](b.Customer.ID)
	b.Photographer = entity.RefTo[entity.Photographer](b.Photographer.ID)
	b.Package = entity.RefTo[entity.Package](b.Package.ID)
	b.Service = entity.RefTo[entity.Service](b.Service.ID)
	b.Promo = entity.RefTo[entity.Promo](b.Promo.ID)
	return b
}

func stripTransaction(t entity.Transaction) entity.Transaction {
	t.Booking = entity.RefTo[entity.Booking](t.Booking.ID)
	t.Customer = entity.RefTo[entity.Customer](t.Customer.ID)
	t.OriginalTransaction = entity.RefTo[entity.Transaction](t.OriginalTransaction.ID)
	t.RefundTransaction = entity.RefTo[entity.Transaction](t.RefundTransaction.ID)
	t.PaymentProofImages = append([]string(nil), t.PaymentProofImages...)
	return t
}

func stripRequest(r entity.TransactionRequest) entity.TransactionRequest {
	r.Transaction = entity.RefTo[entity.Transaction](r.Transaction.ID)
	r.Booking = entity.RefTo[entity.Booking](r.Booking.ID)
	r.Customer = entity.RefTo[entity.Customer](r.Customer.ID)
	r.ReviewedBy = entity.RefTo[entity.User](r.ReviewedBy.ID)
	return r
}

// query is the interpreted form of a specification list.
type query struct {
	where  []func(fields map[string]interface{}) bool
	order  string
	desc   bool
	limit  int
	offset int
}

func compile(specs []specification.Specification) query {
	q := query{}
	eq := func(field string, want interface{}) {
		q.where = append(q.where, func(f map[string]interface{}) bool {
			return f[field] == want
		})
	}

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			eq("id", s.ID)
		case specification.ActiveOnly, specification.ActiveUsers:
			eq("is_active", true)
		case specification.FilterBy:
			eq(s.Field, fmt.Sprint(s.Value))
		case specification.ByBookingID:
			eq("booking_id", s.BookingID)
		case specification.ByCustomerID:
			eq("customer_id", s.CustomerID)
		case specification.ByTransactionID:
			eq("transaction_id", s.TransactionID)
		case specification.ByExternalReference:
			eq("external_reference", s.Reference)
		case specification.ByEmail:
			eq("email", s.Email)
		case specification.OrderBy:
			q.order, q.desc = s.Field, s.Desc
		case specification.Pagination:
			q.limit, q.offset = s.Limit, s.Offset
		default:
			panic(fmt.Sprintf("memuow: unsupported specification %T", spec))
		}
	}
	return q
}

func (q query) matches(fields map[string]interface{}) bool {
	for _, w := range q.where {
		if !w(fields) {
			return false
		}
	}
	return true
}

// run filters, orders and pages ids. fieldsOf describes one row.
func run[T any](q query, rows map[uuid.UUID]T, fieldsOf func(T) map[string]interface{}) []T {
	type hit struct {
		row    T
		fields map[string]interface{}
	}

	var hits []hit
	for _, row := range rows {
		f := fieldsOf(row)
		if q.matches(f) {
			hits = append(hits, hit{row: row, fields: f})
		}
	}

	order := q.order
	if order == "" {
		order = "created_at"
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, _ := hits[i].fields[order].(time.Time)
		b, _ := hits[j].fields[order].(time.Time)
		if q.desc {
			return a.After(b)
		}
		return a.Before(b)
	})

	if q.offset > 0 {
		if q.offset >= len(hits) {
			hits = nil
		} else {
			hits = hits[q.offset:]
		}
	}
	if q.limit > 0 && len(hits) > q.limit {
		hits = hits[:q.limit]
	}

	out := make([]T, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.row)
	}
	return out
}

func transactionFields(t entity.Transaction) map[string]interface{} {
	ext := ""
	if t.ExternalReference != nil {
		ext = *t.ExternalReference
	}
	return map[string]interface{}{
		"id":                 t.ID,
		"status":             string(t.Status),
		"transaction_type":   string(t.TransactionType),
		"booking_id":         t.Booking.ID,
		"customer_id":        t.Customer.ID,
		"external_reference": ext,
		"is_active":          t.IsActive,
		"created_at":         t.CreatedAt,
		"transaction_date":   t.TransactionDate,
	}
}

func requestFields(r entity.TransactionRequest) map[string]interface{} {
	return map[string]interface{}{
		"id":             r.ID,
		"status":         string(r.Status),
		"request_type":   string(r.RequestType),
		"transaction_id": r.Transaction.ID,
		"customer_id":    r.Customer.ID,
		"is_active":      r.IsActive,
		"created_at":     r.CreatedAt,
	}
}

func userFields(u entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
	}
}

func bookingFields(b entity.Booking) map[string]interface{} {
	return map[string]interface{}{"id": b.ID, "created_at": b.CreatedAt}
}

func customerFields(c entity.Customer) map[string]interface{} {
	return map[string]interface{}{"id": c.ID}
}
