package service

import (
	"context"
	"testing"

	"photostudio-be/internal/config"
	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/testutil/eventstub"
	"photostudio-be/internal/testutil/memuow"
	"photostudio-be/pkg/ledger"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverKey = "SB-Mid-server-test"

type stubSnap struct {
	last *snap.Request
	err  *midtrans.Error
}

func (s *stubSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &snap.Response{Token: "snap-token", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token"}, nil
}

type paymentEnv struct {
	ledger  *ledger.Processor
	store   *memuow.Store
	fx      memuow.Fixture
	gateway *stubSnap
	system  uuid.UUID
	svc     IPaymentService
}

func newPaymentEnv(t *testing.T) *paymentEnv {
	t.Helper()
	store := memuow.NewStore()
	fx := memuow.Seed(store)
	gateway := &stubSnap{}
	system := fx.Admin.ID
	processor := ledger.NewProcessor(logger.NewNopLogger(), &eventstub.Publisher{})

	return &paymentEnv{
		ledger:  processor,
		store:   store,
		fx:      fx,
		gateway: gateway,
		system:  system,
		svc: NewPaymentService(store, processor, gateway,
			config.MidtransConfig{ServerKey: serverKey, FinishURL: "https://studio.test/paid"},
			system, logger.NewNopLogger()),
	}
}

func notification(orderId, status string) *dto.MidtransWebhookRequest {
	return &dto.MidtransWebhookRequest{
		TransactionStatus: status,
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "5000.00",
		SignatureKey:      Signature(orderId, "200", "5000.00", serverKey),
	}
}

// checkedOut stores a Pending payment and runs it through Checkout so the
// order id is recorded as its external reference.
func (e *paymentEnv) checkedOut(t *testing.T, amount int64) entity.Transaction {
	t.Helper()
	txn := e.fx.Payment(e.store, amount, entity.TransactionStatusPending)
	_, err := e.svc.Checkout(context.Background(), e.fx.Admin.ID, txn.ID)
	require.NoError(t, err)
	stored, _ := e.store.Transaction(txn.ID)
	return stored
}

func TestCheckoutPendingPayment(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.fx.Payment(env.store, 5000, entity.TransactionStatusPending)

	res, err := env.svc.Checkout(context.Background(), env.fx.Admin.ID, txn.ID)
	require.NoError(t, err)

	assert.Equal(t, "snap-token", res.SnapToken)
	assert.Equal(t, txn.ID.String(), res.OrderId)
	require.NotNil(t, env.gateway.last)
	assert.Equal(t, int64(5000), env.gateway.last.TransactionDetails.GrossAmt)
	assert.Equal(t, env.fx.Customer.Email, env.gateway.last.CustomerDetail.Email)
	assert.Equal(t, "https://studio.test/paid", env.gateway.last.Callbacks.Finish)

	stored, _ := env.store.Transaction(txn.ID)
	require.NotNil(t, stored.ExternalReference)
	assert.Equal(t, txn.ID.String(), *stored.ExternalReference)
}

func TestCheckoutRequiresPendingPayment(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.fx.Payment(env.store, 5000, entity.TransactionStatusCompleted)

	_, err := env.svc.Checkout(context.Background(), env.fx.Admin.ID, txn.ID)
	assert.True(t, apperror.IsConflict(err))
	assert.Nil(t, env.gateway.last)
}

func TestCheckoutGatewayError(t *testing.T) {
	env := newPaymentEnv(t)
	env.gateway.err = &midtrans.Error{Message: "bad server key"}
	txn := env.fx.Payment(env.store, 5000, entity.TransactionStatusPending)

	_, err := env.svc.Checkout(context.Background(), env.fx.Admin.ID, txn.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad server key")

	stored, _ := env.store.Transaction(txn.ID)
	assert.Nil(t, stored.ExternalReference)
}

func TestNotificationSettlementApproves(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.checkedOut(t, 5000)

	require.NoError(t, env.svc.HandleNotification(context.Background(), notification(txn.ID.String(), "settlement")))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusCompleted, stored.Status)
	require.NotNil(t, stored.UpdatedBy)
	assert.Equal(t, env.system, *stored.UpdatedBy)

	// Redelivery after settlement is acknowledged.
	require.NoError(t, env.svc.HandleNotification(context.Background(), notification(txn.ID.String(), "settlement")))
}

func TestNotificationExpireRejects(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.checkedOut(t, 5000)

	require.NoError(t, env.svc.HandleNotification(context.Background(), notification(txn.ID.String(), "expire")))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusFailed, stored.Status)
	assert.Equal(t, "Payment gateway reported expire", stored.FailureReason)
}

func TestNotificationPendingAndChallengeAreNoops(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.checkedOut(t, 5000)

	require.NoError(t, env.svc.HandleNotification(context.Background(), notification(txn.ID.String(), "pending")))

	challenged := notification(txn.ID.String(), "capture")
	challenged.FraudStatus = "challenge"
	require.NoError(t, env.svc.HandleNotification(context.Background(), challenged))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusPending, stored.Status)
}

func TestNotificationRejectsBadSignature(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.checkedOut(t, 5000)

	req := notification(txn.ID.String(), "settlement")
	req.GrossAmount = "1.00"
	err := env.svc.HandleNotification(context.Background(), req)
	assert.True(t, apperror.IsAuthentication(err))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusPending, stored.Status)
}

func TestNotificationUnknownTransaction(t *testing.T) {
	env := newPaymentEnv(t)
	err := env.svc.HandleNotification(context.Background(), notification(uuid.NewString(), "settlement"))
	assert.True(t, apperror.IsNotFound(err))

	err = env.svc.HandleNotification(context.Background(), notification("not-a-uuid", "settlement"))
	assert.True(t, apperror.IsValidation(err))
}

func TestCheckoutRejectsFractionalAmount(t *testing.T) {
	env := newPaymentEnv(t)
	txn, err := env.ledger.Create(context.Background(), env.store.NewUnitOfWork(context.Background()), dto.CreateTransactionRequest{
		BookingId:       env.fx.Booking.ID,
		Amount:          1500.75,
		TransactionType: "Payment",
		PaymentMethod:   "Midtrans",
	}, env.fx.Admin.ID)
	require.NoError(t, err)

	_, err = env.svc.Checkout(context.Background(), env.fx.Admin.ID, txn.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Nil(t, env.gateway.last, "nothing is sent to the gateway")

	stored, _ := env.store.Transaction(txn.ID)
	assert.Nil(t, stored.ExternalReference)
}

func TestNotificationGrossAmountMustMatch(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.checkedOut(t, 1500)
	orderId := txn.ID.String()

	underpaid := &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "1499.00",
		SignatureKey:      Signature(orderId, "200", "1499.00", serverKey),
	}
	err := env.svc.HandleNotification(context.Background(), underpaid)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusPending, stored.Status)

	exact := *underpaid
	exact.GrossAmount = "1500.00"
	exact.SignatureKey = Signature(orderId, "200", "1500.00", serverKey)
	require.NoError(t, env.svc.HandleNotification(context.Background(), &exact))

	stored, _ = env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusCompleted, stored.Status)
}

func TestNotificationNeedsCheckout(t *testing.T) {
	env := newPaymentEnv(t)
	txn := env.fx.Payment(env.store, 5000, entity.TransactionStatusPending)

	err := env.svc.HandleNotification(context.Background(), notification(txn.ID.String(), "settlement"))
	assert.True(t, apperror.IsNotFound(err))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusPending, stored.Status)
}

func TestSignatureIsLowerHexSHA512(t *testing.T) {
	sig := Signature("order-1", "200", "10000.00", "key")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Signature("order-1", "200", "10000.00", "key"))
	assert.NotEqual(t, sig, Signature("order-1", "201", "10000.00", "key"))
}
