package dto

import "github.com/google/uuid"

type CheckoutResponse struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	OrderId       string    `json:"order_id"`
	SnapToken     string    `json:"snap_token"`
	RedirectUrl   string    `json:"redirect_url"`
}

// MidtransWebhookRequest is the subset of the Midtrans HTTP notification
// the ledger reads.
type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}
