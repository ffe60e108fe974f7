package service

import (
	"context"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/pkg/admin/mapper"
	"photostudio-be/pkg/admin/refund"

	"github.com/google/uuid"
)

type ITransactionRequestService interface {
	List(ctx context.Context, filter dto.TransactionRequestFilter) ([]*dto.TransactionRequestResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TransactionRequestResponse, error)
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateTransactionRequestRequest) (*dto.TransactionRequestResponse, error)
	ApproveRefund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.ApproveRefundRequest) (*dto.TransactionRequestResponse, error)
	RejectRefund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.RejectRefundRequest) (*dto.TransactionRequestResponse, error)
}

type transactionRequestService struct {
	uowFactory unitofwork.RepositoryFactory
	refunds    *refund.Processor
}

func NewTransactionRequestService(uowFactory unitofwork.RepositoryFactory, processor *refund.Processor) ITransactionRequestService {
	return &transactionRequestService{
		uowFactory: uowFactory,
		refunds:    processor,
	}
}

func (s *transactionRequestService) List(ctx context.Context, filter dto.TransactionRequestFilter) ([]*dto.TransactionRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reqs, err := s.refunds.List(ctx, uow, filter)
	if err != nil {
		return nil, err
	}
	return mapper.RequestsToResponse(reqs), nil
}

func (s *transactionRequestService) Show(ctx context.Context, id uuid.UUID) (*dto.TransactionRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	req, err := s.refunds.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.RequestToResponse(req), nil
}

func (s *transactionRequestService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateTransactionRequestRequest) (*dto.TransactionRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	created, err := s.refunds.Create(ctx, uow, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.RequestToResponse(created), nil
}

func (s *transactionRequestService) ApproveRefund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.ApproveRefundRequest) (*dto.TransactionRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	approved, err := s.refunds.ApproveRefund(ctx, uow, id, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.RequestToResponse(approved), nil
}

func (s *transactionRequestService) RejectRefund(ctx context.Context, actorId uuid.UUID, id uuid.UUID, req *dto.RejectRefundRequest) (*dto.TransactionRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rejected, err := s.refunds.RejectRefund(ctx, uow, id, *req, actorId)
	if err != nil {
		return nil, err
	}
	return mapper.RequestToResponse(rejected), nil
}
