package contract

import (
	"context"
	"time"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	// FindOneWithDetails and FindAllWithDetails expand booking context,
	// customer and refund cross-links.
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus writes the status fields of txn and bumps its version,
	// but only while the stored row is active and still in status from.
	// It reports whether a row was changed.
	TransitionStatus(ctx context.Context, txn *entity.Transaction, from entity.TransactionStatus) (bool, error)
	// UpdateDetails writes the mutable descriptive fields only.
	UpdateDetails(ctx context.Context, txn *entity.Transaction) error
	// LinkRefund records refundID on the original unless it already carries one.
	LinkRefund(ctx context.Context, originalID, refundID uuid.UUID, refundedAt time.Time, actorID uuid.UUID) (bool, error)
	SoftDelete(ctx context.Context, id, actorID uuid.UUID, deletedAt time.Time) (bool, error)
}
