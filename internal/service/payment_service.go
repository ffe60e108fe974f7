package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"photostudio-be/internal/config"
	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/pkg/ledger"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

// SnapGateway is the part of the Midtrans Snap client checkout needs.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapGateway builds a Snap client for the configured environment.
func NewSnapGateway(cfg config.MidtransConfig) SnapGateway {
	var client snap.Client
	env := midtrans.Sandbox
	if cfg.IsProduction {
		env = midtrans.Production
	}
	client.New(cfg.ServerKey, env)
	return &client
}

type IPaymentService interface {
	Checkout(ctx context.Context, actorId uuid.UUID, transactionId uuid.UUID) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Processor
	gateway    SnapGateway
	cfg        config.MidtransConfig
	systemUser uuid.UUID
	logger     logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	processor *ledger.Processor,
	gateway SnapGateway,
	cfg config.MidtransConfig,
	systemUser uuid.UUID,
	logger logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		ledger:     processor,
		gateway:    gateway,
		cfg:        cfg,
		systemUser: systemUser,
		logger:     logger,
	}
}

func (s *paymentService) Checkout(ctx context.Context, actorId uuid.UUID, transactionId uuid.UUID) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	txn, err := s.ledger.Get(ctx, uow, transactionId)
	if err != nil {
		return nil, err
	}
	if txn.TransactionType != entity.TransactionTypePayment {
		return nil, apperror.ValidationError{Msg: "Only payments can be checked out"}
	}
	if txn.Status != entity.TransactionStatusPending {
		return nil, apperror.ConflictError{Resource: "transaction", Msg: "only pending payments can be checked out"}
	}
	// IDR has no minor units; Snap only accepts whole amounts.
	if !txn.Amount.Equal(txn.Amount.Truncate(0)) {
		return nil, apperror.ValidationError{Field: "amount", Msg: "must be a whole amount for gateway checkout"}
	}

	orderId := txn.ID.String()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: txn.Amount.IntPart(),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    txn.Reference,
				Price: txn.Amount.IntPart(),
				Qty:   1,
				Name:  fmt.Sprintf("Booking payment %s", txn.Reference),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if s.cfg.FinishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: s.cfg.FinishURL}
	}
	if c, ok := txn.Customer.Get(); ok {
		snapReq.CustomerDetail = &midtrans.CustomerDetails{
			FName: c.Name,
			Email: c.Email,
			Phone: c.Mobile,
		}
	}

	snapResp, midErr := s.gateway.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	if _, err := s.ledger.Update(ctx, uow, txn.ID, dto.UpdateTransactionRequest{ExternalReference: &orderId}, actorId); err != nil {
		return nil, err
	}

	s.logger.Info("PAYMENT", "Snap checkout created", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"grossAmount":   txn.Amount.IntPart(),
	})

	return &dto.CheckoutResponse{
		TransactionId: txn.ID,
		OrderId:       orderId,
		SnapToken:     snapResp.Token,
		RedirectUrl:   snapResp.RedirectURL,
	}, nil
}

// Signature computes the Midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func Signature(orderId, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if s.cfg.ServerKey == "" {
		return fmt.Errorf("midtrans server key is not configured")
	}
	expected := Signature(req.OrderId, req.StatusCode, req.GrossAmount, s.cfg.ServerKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(req.SignatureKey)) != 1 {
		s.logger.Warn("PAYMENT", "Notification signature mismatch", map[string]interface{}{
			"orderId": req.OrderId,
		})
		return apperror.AuthenticationError{Msg: "invalid signature"}
	}

	if _, err := uuid.Parse(req.OrderId); err != nil {
		return apperror.ValidationError{Field: "order_id", Msg: "must be a transaction id"}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.checkedOut(ctx, uow, req.OrderId)
	if err != nil {
		return err
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" {
			s.logger.Info("PAYMENT", "Capture held for fraud review", map[string]interface{}{"orderId": req.OrderId})
			return nil
		}
		if err := matchGrossAmount(req.GrossAmount, txn.Amount); err != nil {
			s.logger.Warn("PAYMENT", "Notification amount mismatch", map[string]interface{}{
				"orderId":     req.OrderId,
				"grossAmount": req.GrossAmount,
				"ledger":      txn.Amount.String(),
			})
			return err
		}
		_, err = s.ledger.Approve(ctx, uow, txn.ID, s.systemUser)
	case "deny", "cancel", "expire", "failure":
		_, err = s.ledger.Reject(ctx, uow, txn.ID, fmt.Sprintf("Payment gateway reported %s", req.TransactionStatus), s.systemUser)
	default:
		s.logger.Info("PAYMENT", "Notification needs no ledger change", map[string]interface{}{
			"orderId": req.OrderId,
			"status":  req.TransactionStatus,
		})
		return nil
	}

	if apperror.IsConflict(err) {
		// Midtrans retries until it sees a 200; a settled transaction is acknowledged.
		s.logger.Info("PAYMENT", "Notification for settled transaction ignored", map[string]interface{}{
			"orderId": req.OrderId,
			"status":  req.TransactionStatus,
		})
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("PAYMENT", "Notification applied", map[string]interface{}{
		"orderId": req.OrderId,
		"status":  req.TransactionStatus,
	})
	return nil
}

// checkedOut finds the transaction Checkout stored the order id on.
func (s *paymentService) checkedOut(ctx context.Context, uow unitofwork.UnitOfWork, orderId string) (*entity.Transaction, error) {
	txn, err := uow.TransactionRepository().FindOne(ctx,
		specification.ByExternalReference{Reference: orderId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction"}
	}
	return txn, nil
}

func matchGrossAmount(gross string, amount decimal.Decimal) error {
	paid, err := decimal.NewFromString(gross)
	if err != nil {
		return apperror.ValidationError{Field: "gross_amount", Msg: "must be a decimal amount"}
	}
	if !paid.Equal(amount) {
		return apperror.ValidationError{Field: "gross_amount", Msg: "does not match the transaction amount"}
	}
	return nil
}
