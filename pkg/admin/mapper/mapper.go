package mapper

import (
	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/pkg/ledger"
)

// TransactionToResponse converts a ledger entity to its API shape. Related
// records appear only when the repository expanded them.
func TransactionToResponse(t *entity.Transaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	images := t.PaymentProofImages
	if images == nil {
		images = []string{}
	}

	res := &dto.TransactionResponse{
		Id:                    t.ID,
		Reference:             t.Reference,
		BookingId:             t.Booking.ID,
		CustomerId:            t.Customer.ID,
		Amount:                t.Amount.InexactFloat64(),
		TransactionType:       string(t.TransactionType),
		PaymentMethod:         t.PaymentMethod,
		Status:                string(t.Status),
		PaymentProofImages:    images,
		ExternalReference:     t.ExternalReference,
		TransactionDate:       t.TransactionDate,
		ProcessedAt:           t.ProcessedAt,
		FailedAt:              t.FailedAt,
		RefundedAt:            t.RefundedAt,
		Notes:                 t.Notes,
		FailureReason:         t.FailureReason,
		RefundReason:          t.RefundReason,
		OriginalTransactionId: t.OriginalTransaction.IDPtr(),
		RefundTransactionId:   t.RefundTransaction.IDPtr(),
		IsActive:              t.IsActive,
		Version:               t.Version,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}

	if b, ok := t.Booking.Get(); ok {
		res.Booking = BookingToDetail(b)
	}
	if c, ok := t.Customer.Get(); ok {
		res.Customer = CustomerToSummary(c)
	}
	if o, ok := t.OriginalTransaction.Get(); ok {
		res.OriginalTransaction = TransactionToSummary(o)
	}
	if r, ok := t.RefundTransaction.Get(); ok {
		res.RefundTransaction = TransactionToSummary(r)
	}
	return res
}

func TransactionsToResponse(txns []*entity.Transaction) []*dto.TransactionResponse {
	res := make([]*dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		res = append(res, TransactionToResponse(t))
	}
	return res
}

func TransactionToSummary(t *entity.Transaction) *dto.TransactionSummary {
	if t == nil {
		return nil
	}
	return &dto.TransactionSummary{
		Id:            t.ID,
		Reference:     t.Reference,
		Amount:        t.Amount.InexactFloat64(),
		PaymentMethod: t.PaymentMethod,
		Status:        string(t.Status),
	}
}

func CustomerToSummary(c *entity.Customer) *dto.ContactSummary {
	if c == nil {
		return nil
	}
	return &dto.ContactSummary{Id: c.ID, Name: c.Name, Email: c.Email, Mobile: c.Mobile}
}

func UserToSummary(u *entity.User) *dto.ContactSummary {
	if u == nil {
		return nil
	}
	return &dto.ContactSummary{Id: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile}
}

func BookingToSummary(b *entity.Booking) dto.BookingSummary {
	return dto.BookingSummary{
		Id:          b.ID,
		Reference:   b.Reference,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		Status:      b.Status,
	}
}

// BookingToDetail fills every nested block the booking carries expanded.
func BookingToDetail(b *entity.Booking) *dto.BookingDetail {
	if b == nil {
		return nil
	}
	res := &dto.BookingDetail{
		BookingSummary: BookingToSummary(b),
		TotalAmount:    b.TotalAmount.InexactFloat64(),
	}
	if c, ok := b.Customer.Get(); ok {
		res.Customer = CustomerToSummary(c)
	}
	if p, ok := b.Photographer.Get(); ok {
		res.Photographer = &dto.ContactSummary{Id: p.ID, Name: p.Name, Email: p.Email, Mobile: p.Mobile}
	}
	if p, ok := b.Package.Get(); ok {
		res.Package = &dto.PackageInfo{Id: p.ID, Name: p.Name, Price: p.Price.InexactFloat64()}
	}
	if s, ok := b.Service.Get(); ok {
		res.Service = &dto.ServiceInfo{Id: s.ID, Name: s.Name}
	}
	if p, ok := b.Promo.Get(); ok {
		res.Promo = &dto.PromoInfo{Id: p.ID, Code: p.Code, DiscountPercent: p.DiscountPercent.InexactFloat64()}
	}
	return res
}

// RequestToResponse converts a review ticket. The queue view carries flat
// summaries; the detail view also carries booking context under the
// transaction.
func RequestToResponse(r *entity.TransactionRequest) *dto.TransactionRequestResponse {
	if r == nil {
		return nil
	}
	res := &dto.TransactionRequestResponse{
		Id:              r.ID,
		RequestType:     string(r.RequestType),
		Status:          string(r.Status),
		Reason:          r.Reason,
		RejectionReason: r.RejectionReason,
		AdminNotes:      r.AdminNotes,
		TransactionId:   r.Transaction.ID,
		BookingId:       r.Booking.ID,
		CustomerId:      r.Customer.ID,
		ReviewedById:    r.ReviewedBy.IDPtr(),
		ReviewedAt:      r.ReviewedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.RequestedAmount != nil {
		amount := r.RequestedAmount.InexactFloat64()
		res.RequestedAmount = &amount
	}

	if t, ok := r.Transaction.Get(); ok {
		res.Transaction = &dto.RequestTransaction{TransactionSummary: *TransactionToSummary(t)}
		if b, ok := t.Booking.Get(); ok {
			res.Transaction.Booking = BookingToDetail(b)
		}
	}
	if b, ok := r.Booking.Get(); ok {
		res.Booking = BookingToDetail(b)
	}
	if c, ok := r.Customer.Get(); ok {
		res.Customer = CustomerToSummary(c)
	}
	if u, ok := r.ReviewedBy.Get(); ok {
		res.ReviewedBy = UserToSummary(u)
	}
	return res
}

func RequestsToResponse(reqs []*entity.TransactionRequest) []*dto.TransactionRequestResponse {
	res := make([]*dto.TransactionRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		res = append(res, RequestToResponse(r))
	}
	return res
}

func SummaryToResponse(s *ledger.BookingSummary) *dto.BookingFinancialSummary {
	return &dto.BookingFinancialSummary{
		BookingId:       s.BookingID,
		AllTransactions: TransactionsToResponse(s.All),
		Completed:       TransactionsToResponse(s.Completed),
		Pending:         TransactionsToResponse(s.Pending),
		Failed:          TransactionsToResponse(s.Failed),
		TotalPaid:       s.TotalPaid.InexactFloat64(),
		TotalRefunded:   s.TotalRefunded.InexactFloat64(),
		NetAmount:       s.NetAmount.InexactFloat64(),
	}
}

func UserToDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{Id: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile, Role: string(u.Role)}
}

// ListToResponse wraps one ledger page.
func ListToResponse(l *ledger.ListResult) *dto.TransactionListResponse {
	return &dto.TransactionListResponse{
		Items: TransactionsToResponse(l.Items),
		Total: l.Total,
		Page:  l.Page,
		Limit: l.Limit,
	}
}
