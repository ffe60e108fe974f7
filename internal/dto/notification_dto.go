package dto

// EmailJob is the payload carried on the in-process mail topic.
type EmailJob struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// LedgerEventMessage is pushed to admin dashboards over websocket.
type LedgerEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt string                 `json:"occurred_at"`
}
