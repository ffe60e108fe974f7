package implementation

import (
	"context"
	"errors"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/mapper"
	"photostudio-be/internal/model"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/scope"
	"photostudio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type transactionRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionRequestMapper
}

func NewTransactionRequestRepository(db *gorm.DB) contract.TransactionRequestRepository {
	return &transactionRequestRepositoryImpl{db: db, mapper: mapper.NewTransactionRequestMapper()}
}

func (r *transactionRequestRepositoryImpl) Create(ctx context.Context, req *entity.TransactionRequest) error {
	m := r.mapper.ToModel(req)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "transaction request")
	}
	req.ID = m.ID
	req.CreatedAt = m.CreatedAt
	req.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *transactionRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *transactionRequestRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRequest, error) {
	return r.findOne(r.db.WithContext(ctx).Scopes(scope.RequestDetails), specs...)
}

// FindAllWithSummaries returns requests with preloaded transaction, booking,
// customer and reviewer relations
func (r *transactionRequestRepositoryImpl) FindAllWithSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.TransactionRequest, error) {
	var models []*model.TransactionRequest
	query := specification.ApplyAll(r.db.WithContext(ctx).Scopes(scope.RequestSummary), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	requests := make([]*entity.TransactionRequest, 0, len(models))
	for _, m := range models {
		requests = append(requests, r.mapper.ToEntity(m))
	}
	return requests, nil
}

func (r *transactionRequestRepositoryImpl) CloseReview(ctx context.Context, req *entity.TransactionRequest, from entity.RequestStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.TransactionRequest{}).
		Where("id = ? AND status = ?", req.ID, string(from)).
		Updates(map[string]interface{}{
			"status":           string(req.Status),
			"rejection_reason": req.RejectionReason,
			"admin_notes":      req.AdminNotes,
			"reviewed_by":      req.ReviewedBy.IDPtr(),
			"reviewed_at":      req.ReviewedAt,
			"updated_by":       req.UpdatedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *transactionRequestRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.TransactionRequest, error) {
	var m model.TransactionRequest
	if err := specification.ApplyAll(query, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
