package service

import (
	"context"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/pkg/admin/mapper"
	"photostudio-be/pkg/ledger"

	"github.com/google/uuid"
)

type ITransactionService interface {
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error)
	Update(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, actorId uuid.UUID, id uuid.UUID) error
	Approve(ctx context.Context, actorId uuid.UUID, id uuid.UUID) (*dto.TransactionResponse, error)
	Reject(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.RejectTransactionRequest) (*dto.TransactionResponse, error)
	Refund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.CreateRefundRequest) (*dto.TransactionResponse, error)
	BookingSummary(ctx context.Context, bookingId uuid.UUID) (*dto.BookingFinancialSummary, error)
}

type transactionService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Processor
}

func NewTransactionService(uowFactory unitofwork.RepositoryFactory, processor *ledger.Processor) ITransactionService {
	return &transactionService{
		uowFactory: uowFactory,
		ledger:     processor,
	}
}

func (s *transactionService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.ledger.Create(ctx, uow, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(txn), nil
}

func (s *transactionService) List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := s.ledger.List(ctx, uow, filter)
	if err != nil {
		return nil, err
	}
	return mapper.ListToResponse(page), nil
}

func (s *transactionService) Show(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.ledger.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(txn), nil
}

func (s *transactionService) Update(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.ledger.Update(ctx, uow, id, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(txn), nil
}

func (s *transactionService) Delete(ctx context.Context, actorId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.ledger.SoftDelete(ctx, uow, id, actorId)
}

func (s *transactionService) Approve(ctx context.Context, actorId uuid.UUID, id uuid.UUID) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.ledger.Approve(ctx, uow, id, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(txn), nil
}

func (s *transactionService) Reject(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.RejectTransactionRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.ledger.Reject(ctx, uow, id, req.Reason, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(txn), nil
}

func (s *transactionService) Refund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.CreateRefundRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	refund, err := s.ledger.Refund(ctx, uow, id, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.TransactionToResponse(refund), nil
}

func (s *transactionService) BookingSummary(ctx context.Context, bookingId uuid.UUID) (*dto.BookingFinancialSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	summary, err := s.ledger.BookingSummary(ctx, uow, bookingId)
	if err != nil {
		return nil, err
	}
	return mapper.SummaryToResponse(summary), nil
}
