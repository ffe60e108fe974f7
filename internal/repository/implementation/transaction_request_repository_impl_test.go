package implementation

import (
	"context"
	"testing"
	"time"

	"photostudio-be/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseReviewIsConditional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRequestRepository(db)
	now := time.Now()
	admin := uuid.New()
	req := &entity.TransactionRequest{
		ID:              uuid.New(),
		Status:          entity.RequestStatusRejected,
		RejectionReason: "Payment never cleared",
		ReviewedBy:      entity.RefTo[entity.User](admin),
		ReviewedAt:      &now,
		UpdatedBy:       &admin,
	}

	mock.ExpectExec(`UPDATE "transaction_requests" SET .*"status".*"reviewed_by".*WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "transaction_requests" SET .*WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	closed, err := repo.CloseReview(context.Background(), req, entity.RequestStatusPending)
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = repo.CloseReview(context.Background(), req, entity.RequestStatusPending)
	require.NoError(t, err)
	assert.False(t, closed, "a request that already left Pending is not touched")

	require.NoError(t, mock.ExpectationsWereMet())
}
