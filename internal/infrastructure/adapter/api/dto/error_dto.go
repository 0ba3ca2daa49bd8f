package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Checks is populated only for eligibility rejections so the client can
	// show which rule failed
	Checks *EligibilityChecks `json:"checks,omitempty"`
}

// EligibilityChecks reports the individual resale policy checks
type EligibilityChecks struct {
	TransferableOk bool `json:"transferableOk"`
	DateOk         bool `json:"dateOk"`
	PriceOk        bool `json:"priceOk"`
}
