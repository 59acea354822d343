package model

import "time"

// WebhookDelivery records one inbound delivery from the source-control
// provider, keyed by the provider's delivery GUID. Redeliveries are detected
// at insert time and logged; processing still runs because the whole pipeline
// is idempotent, so a replay after a mid-flight failure completes the work.
type WebhookDelivery struct {
	DeliveryID string    `json:"delivery_id"`
	Event      string    `json:"event"`
	ReceivedAt time.Time `json:"received_at"`
}
