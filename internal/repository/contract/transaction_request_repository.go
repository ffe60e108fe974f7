package contract

import (
	"context"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/repository/specification"
)

type TransactionRequestRepository interface {
	Create(ctx context.Context, req *entity.TransactionRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error)
	// FindAllWithSummaries expands one level of transaction, booking,
	// customer and reviewer for the review queue.
	FindAllWithSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.TransactionRequest, error)
	// FindOneWithDetails expands transaction and booking down to their
	// customer, photographer, package, promo and service.
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error)
	// CloseReview writes the review outcome only while the stored request is
	// still in status from.
	CloseReview(ctx context.Context, req *entity.TransactionRequest, from entity.RequestStatus) (bool, error)
}
