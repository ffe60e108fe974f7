package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from TransactionStatus
		to   TransactionStatus
		want bool
	}{
		{TransactionStatusPending, TransactionStatusCompleted, true},
		{TransactionStatusPending, TransactionStatusFailed, true},
		{TransactionStatusPending, TransactionStatusPending, false},
		{TransactionStatusCompleted, TransactionStatusFailed, false},
		{TransactionStatusCompleted, TransactionStatusPending, false},
		{TransactionStatusFailed, TransactionStatusCompleted, false},
		{TransactionStatus("Unknown"), TransactionStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReasonLongEnough(t *testing.T) {
	assert.False(t, ReasonLongEnough("abcd"))
	assert.True(t, ReasonLongEnough("abcde"))
	assert.False(t, ReasonLongEnough("  abc  "))
	assert.True(t, ReasonLongEnough("héllo"))
}

func TestNewTransactionReference(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	ref := NewTransactionReference(id)

	assert.Equal(t, "TXN-3F2A9C1E", ref)
	assert.True(t, strings.HasPrefix(ref, "TXN-"))
}

func TestRef(t *testing.T) {
	id := uuid.New()

	plain := RefTo[Customer](id)
	_, ok := plain.Get()
	assert.False(t, ok)
	assert.Equal(t, id, plain.ID)

	full := Expanded(id, &Customer{ID: id, Name: "Ana"})
	rec, ok := full.Get()
	assert.True(t, ok)
	assert.Equal(t, "Ana", rec.Name)

	var none Ref[Promo]
	assert.True(t, none.IsZero())
	assert.Nil(t, none.IDPtr())
	assert.True(t, OptionalRef[Promo](nil, nil).IsZero())
}
