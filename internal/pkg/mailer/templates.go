package mailer

import (
	"fmt"
	"html"
)

const layout = `<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>%s</h2>
	<p>Hi %s,</p>
	%s
	<p style="color: #888; font-size: 12px;">Reference %s</p>
</div>`

// CustomerFacing reports whether customers are emailed about eventType.
func CustomerFacing(eventType string) bool {
	_, _, ok := LedgerNotice(eventType, "", "", "", "")
	return ok
}

// LedgerNotice renders the customer email for one ledger event. ok is false
// for events customers are not told about.
func LedgerNotice(eventType, name, reference, amount, reason string) (subject, body string, ok bool) {
	var heading, content string
	switch eventType {
	case "TRANSACTION_APPROVED":
		subject = "Payment received"
		heading = "Thank you for your payment"
		content = fmt.Sprintf("<p>We have confirmed your payment of <strong>%s</strong>.</p>", html.EscapeString(amount))
	case "TRANSACTION_REJECTED":
		subject = "Payment could not be confirmed"
		heading = "Your payment was not confirmed"
		content = fmt.Sprintf("<p>Your payment of <strong>%s</strong> was not confirmed.</p><p>Reason: %s</p>",
			html.EscapeString(amount), html.EscapeString(reason))
	case "REFUND_ISSUED":
		subject = "Refund issued"
		heading = "A refund is on its way"
		content = fmt.Sprintf("<p>We have issued a refund of <strong>%s</strong> for your booking.</p>", html.EscapeString(amount))
	case "REFUND_REQUEST_APPROVED":
		subject = "Refund request approved"
		heading = "Your refund request was approved"
		content = "<p>Our team approved your refund request. You will receive a separate notice once the refund is issued.</p>"
	case "REFUND_REQUEST_REJECTED":
		subject = "Refund request declined"
		heading = "Your refund request was declined"
		content = fmt.Sprintf("<p>Reason: %s</p>", html.EscapeString(reason))
	default:
		return "", "", false
	}

	body = fmt.Sprintf(layout, heading, html.EscapeString(name), content, html.EscapeString(reference))
	return subject, body, true
}
