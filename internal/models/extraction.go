package models

// ExtractedItem is one line item returned by the extraction service.
type ExtractedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity,omitempty"`
}

// ExtractedBill is the extraction service's response for one uploaded
// bill. Only Items feeds the ledger; the remaining fields are metadata
// the service reports about its own reading of the bill.
type ExtractedBill struct {
	Items []ExtractedItem `json:"items"`

	Subtotal      float64 `json:"subtotal,omitempty"`
	Tax           float64 `json:"tax,omitempty"`
	ServiceCharge float64 `json:"service_charge,omitempty"`
	Total         float64 `json:"total,omitempty"`

	RestaurantName string `json:"restaurant_name,omitempty"`
	Date           string `json:"date,omitempty"`

	// ConfidenceScore is the service's 0-1 estimate of extraction
	// quality.
	ConfidenceScore float64 `json:"confidence_score,omitempty"`
}
