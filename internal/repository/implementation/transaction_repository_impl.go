package implementation

import (
	"context"
	"errors"
	"time"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/mapper"
	"photostudio-be/internal/model"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/scope"
	"photostudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type transactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionMapper
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &transactionRepositoryImpl{db: db, mapper: mapper.NewTransactionMapper()}
}

func (r *transactionRepositoryImpl) Create(ctx context.Context, txn *entity.Transaction) error {
	m := r.mapper.ToModel(txn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "transaction")
	}
	txn.ID = m.ID
	txn.CreatedAt = m.CreatedAt
	txn.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *transactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *transactionRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	return r.findOne(r.db.WithContext(ctx).Scopes(scope.TransactionDetails), specs...)
}

func (r *transactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return r.findAll(r.db.WithContext(ctx), specs...)
}

func (r *transactionRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return r.findAll(r.db.WithContext(ctx).Scopes(scope.TransactionDetails), specs...)
}

func (r *transactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *transactionRepositoryImpl) TransitionStatus(ctx context.Context, txn *entity.Transaction, from entity.TransactionStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ? AND is_active = ?", txn.ID, string(from), true).
		Updates(map[string]interface{}{
			"status":         string(txn.Status),
			"processed_at":   txn.ProcessedAt,
			"failed_at":      txn.FailedAt,
			"failure_reason": txn.FailureReason,
			"updated_by":     txn.UpdatedBy,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *transactionRepositoryImpl) UpdateDetails(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]interface{}{
			"notes":                txn.Notes,
			"external_reference":   txn.ExternalReference,
			"payment_proof_images": datatypes.JSONSlice[string](txn.PaymentProofImages),
			"updated_by":           txn.UpdatedBy,
		}).Error
}

func (r *transactionRepositoryImpl) LinkRefund(ctx context.Context, originalID, refundID uuid.UUID, refundedAt time.Time, actorID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND refund_transaction_id IS NULL", originalID).
		Updates(map[string]interface{}{
			"refund_transaction_id": refundID,
			"refunded_at":           refundedAt,
			"updated_by":            actorID,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "transaction")
	}
	return result.RowsAffected > 0, nil
}

func (r *transactionRepositoryImpl) SoftDelete(ctx context.Context, id, actorID uuid.UUID, deletedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_by": actorID,
			"deleted_at": deletedAt,
			"updated_by": actorID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *transactionRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.Transaction, error) {
	var m model.Transaction
	if err := specification.ApplyAll(query, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *transactionRepositoryImpl) findAll(query *gorm.DB, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var models []*model.Transaction
	if err := specification.ApplyAll(query, specs...).Find(&models).Error; err != nil {
		return nil, err
	}

	txns := make([]*entity.Transaction, 0, len(models))
	for _, m := range models {
		txns = append(txns, r.mapper.ToEntity(m))
	}
	return txns, nil
}
