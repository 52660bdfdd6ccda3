package usecase

// ShippingStatusMsg arrives on Kafka from the fulfillment pipeline.
type ShippingStatusMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // pending | shipped | delivered
}
