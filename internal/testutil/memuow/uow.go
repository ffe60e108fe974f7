package memuow

import (
	"context"
	"fmt"
	"time"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UnitOfWork snapshots the store on Begin and restores the snapshot on
// Rollback.
type UnitOfWork struct {
	store    *Store
	snapshot *tables
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.snapshot != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.data.clone()
	u.snapshot = &snap
	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to commit")
	}
	if err := u.store.fail("UnitOfWork.Commit"); err != nil {
		return err
	}
	u.snapshot = nil
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.data = *u.snapshot
	u.snapshot = nil
	return nil
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return &userRepo{s: u.store}
}

func (u *UnitOfWork) CustomerRepository() contract.CustomerRepository {
	return &customerRepo{s: u.store}
}

func (u *UnitOfWork) BookingRepository() contract.BookingRepository {
	return &bookingRepo{s: u.store}
}

func (u *UnitOfWork) TransactionRepository() contract.TransactionRepository {
	return &transactionRepo{s: u.store}
}

func (u *UnitOfWork) TransactionRequestRepository() contract.TransactionRequestRepository {
	return &requestRepo{s: u.store}
}

// Expansion, mirroring the gorm scopes. Callers hold s.mu.

func (s *Store) bookingDetails(id uuid.UUID) *entity.Booking {
	b, ok := s.data.bookings[id]
	if !ok {
		return nil
	}
	if c, ok := s.data.customers[b.Customer.ID]; ok {
		b.Customer = entity.Expanded(c.ID, &c)
	}
	if p, ok := s.data.photographers[b.Photographer.ID]; ok {
		b.Photographer = entity.Expanded(p.ID, &p)
	}
	if p, ok := s.data.packages[b.Package.ID]; ok {
		b.Package = entity.Expanded(p.ID, &p)
	}
	if sv, ok := s.data.services[b.Service.ID]; ok {
		b.Service = entity.Expanded(sv.ID, &sv)
	}
	if p, ok := s.data.promos[b.Promo.ID]; ok {
		b.Promo = entity.Expanded(p.ID, &p)
	}
	return &b
}

func (s *Store) plainBooking(id uuid.UUID) *entity.Booking {
	b, ok := s.data.bookings[id]
	if !ok {
		return nil
	}
	return &b
}

func (s *Store) customer(id uuid.UUID) *entity.Customer {
	c, ok := s.data.customers[id]
	if !ok {
		return nil
	}
	return &c
}

func (s *Store) plainTransaction(id uuid.UUID) *entity.Transaction {
	t, ok := s.data.transactions[id]
	if !ok {
		return nil
	}
	return &t
}

func (s *Store) transactionDetails(t entity.Transaction) *entity.Transaction {
	t.Booking = entity.Expanded(t.Booking.ID, s.bookingDetails(t.Booking.ID))
	t.Customer = entity.Expanded(t.Customer.ID, s.customer(t.Customer.ID))
	if !t.OriginalTransaction.IsZero() {
		t.OriginalTransaction = entity.Expanded(t.OriginalTransaction.ID, s.plainTransaction(t.OriginalTransaction.ID))
	}
	if !t.RefundTransaction.IsZero() {
		t.RefundTransaction = entity.Expanded(t.RefundTransaction.ID, s.plainTransaction(t.RefundTransaction.ID))
	}
	return &t
}

func (s *Store) reviewer(ref entity.Ref[entity.User]) entity.Ref[entity.User] {
	if ref.IsZero() {
		return ref
	}
	u, ok := s.data.users[ref.ID]
	if !ok {
		return ref
	}
	return entity.Expanded(u.ID, &u)
}

func (s *Store) requestSummary(r entity.TransactionRequest) *entity.TransactionRequest {
	r.Transaction = entity.Expanded(r.Transaction.ID, s.plainTransaction(r.Transaction.ID))
	r.Booking = entity.Expanded(r.Booking.ID, s.plainBooking(r.Booking.ID))
	r.Customer = entity.Expanded(r.Customer.ID, s.customer(r.Customer.ID))
	r.ReviewedBy = s.reviewer(r.ReviewedBy)
	return &r
}

func (s *Store) requestDetails(r entity.TransactionRequest) *entity.TransactionRequest {
	if t := s.plainTransaction(r.Transaction.ID); t != nil {
		t.Booking = entity.Expanded(t.Booking.ID, s.bookingDetails(t.Booking.ID))
		t.Customer = entity.Expanded(t.Customer.ID, s.customer(t.Customer.ID))
		r.Transaction = entity.Expanded(t.ID, t)
	}
	r.Booking = entity.Expanded(r.Booking.ID, s.bookingDetails(r.Booking.ID))
	r.Customer = entity.Expanded(r.Customer.ID, s.customer(r.Customer.ID))
	r.ReviewedBy = s.reviewer(r.ReviewedBy)
	return &r
}

// Users

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *userRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.users, userFields)
	out := make([]*entity.User, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

// Customers and bookings

type customerRepo struct{ s *Store }

func (r *customerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.customers, customerFields)
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

type bookingRepo struct{ s *Store }

func (r *bookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.bookings, bookingFields)
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *bookingRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.bookings, bookingFields)
	if len(rows) == 0 {
		return nil, nil
	}
	return r.s.bookingDetails(rows[0].ID), nil
}

// Transactions

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	if err := r.s.fail("TransactionRepository.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt = r.s.now()
	txn.UpdatedAt = txn.CreatedAt
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = txn.CreatedAt
	}
	r.s.data.transactions[txn.ID] = stripTransaction(*txn)
	return nil
}

func (r *transactionRepo) find(specs []specification.Specification, expand bool) []*entity.Transaction {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.transactions, transactionFields)
	out := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		if expand {
			out = append(out, r.s.transactionDetails(rows[i]))
		} else {
			out = append(out, &rows[i])
		}
	}
	return out
}

func (r *transactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	if rows := r.find(specs, false); len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func (r *transactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return r.find(specs, false), nil
}

func (r *transactionRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	if rows := r.find(specs, true); len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func (r *transactionRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return r.find(specs, true), nil
}

func (r *transactionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.find(specs, false))), nil
}

func (r *transactionRepo) TransitionStatus(ctx context.Context, txn *entity.Transaction, from entity.TransactionStatus) (bool, error) {
	if err := r.s.fail("TransactionRepository.TransitionStatus"); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.transactions[txn.ID]
	if !ok || !stored.IsActive || stored.Status != from {
		return false, nil
	}
	stored.Status = txn.Status
	stored.ProcessedAt = txn.ProcessedAt
	stored.FailedAt = txn.FailedAt
	stored.FailureReason = txn.FailureReason
	stored.UpdatedBy = txn.UpdatedBy
	stored.Version++
	stored.UpdatedAt = r.s.now()
	r.s.data.transactions[txn.ID] = stored
	return true, nil
}

func (r *transactionRepo) UpdateDetails(ctx context.Context, txn *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.transactions[txn.ID]
	if !ok {
		return nil
	}
	stored.Notes = txn.Notes
	stored.ExternalReference = txn.ExternalReference
	stored.PaymentProofImages = append([]string(nil), txn.PaymentProofImages...)
	stored.UpdatedBy = txn.UpdatedBy
	stored.UpdatedAt = r.s.now()
	r.s.data.transactions[txn.ID] = stored
	return nil
}

func (r *transactionRepo) LinkRefund(ctx context.Context, originalID, refundID uuid.UUID, refundedAt time.Time, actorID uuid.UUID) (bool, error) {
	if err := r.s.fail("TransactionRepository.LinkRefund"); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.transactions[originalID]
	if !ok || !stored.RefundTransaction.IsZero() {
		return false, nil
	}
	stored.RefundTransaction = entity.RefTo[entity.Transaction](refundID)
	stored.RefundedAt = &refundedAt
	stored.UpdatedBy = &actorID
	r.s.data.transactions[originalID] = stored
	return true, nil
}

func (r *transactionRepo) SoftDelete(ctx context.Context, id, actorID uuid.UUID, deletedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.transactions[id]
	if !ok || !stored.IsActive {
		return false, nil
	}
	stored.IsActive = false
	stored.DeletedBy = &actorID
	stored.DeletedAt = &deletedAt
	stored.UpdatedBy = &actorID
	r.s.data.transactions[id] = stored
	return true, nil
}

// Transaction requests

type requestRepo struct{ s *Store }

func (r *requestRepo) Create(ctx context.Context, req *entity.TransactionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = r.s.now()
	req.UpdatedAt = req.CreatedAt
	r.s.data.requests[req.ID] = stripRequest(*req)
	return nil
}

func (r *requestRepo) find(specs []specification.Specification, expand func(entity.TransactionRequest) *entity.TransactionRequest) []*entity.TransactionRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := run(compile(specs), r.s.data.requests, requestFields)
	out := make([]*entity.TransactionRequest, 0, len(rows))
	for i := range rows {
		if expand != nil {
			out = append(out, expand(rows[i]))
		} else {
			out = append(out, &rows[i])
		}
	}
	return out
}

func (r *requestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error) {
	if rows := r.find(specs, nil); len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func (r *requestRepo) FindAllWithSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.TransactionRequest, error) {
	return r.find(specs, r.s.requestSummary), nil
}

func (r *requestRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error) {
	if rows := r.find(specs, r.s.requestDetails); len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func (r *requestRepo) CloseReview(ctx context.Context, req *entity.TransactionRequest, from entity.RequestStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.requests[req.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = req.Status
	stored.RejectionReason = req.RejectionReason
	stored.AdminNotes = req.AdminNotes
	stored.ReviewedBy = entity.RefTo[entity.User](req.ReviewedBy.ID)
	stored.ReviewedAt = req.ReviewedAt
	stored.UpdatedBy = req.UpdatedBy
	stored.UpdatedAt = r.s.now()
	r.s.data.requests[req.ID] = stored
	return true, nil
}
