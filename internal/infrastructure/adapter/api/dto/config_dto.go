package dto

// PublicConfigResponse exposes the client-safe configuration: the gateway's
// publishable key and the resale policy knobs the UI needs to pre-validate.
type PublicConfigResponse struct {
	PublishableKey     string  `json:"publishableKey"`
	Currency           string  `json:"currency"`
	ServiceFeeRate     float64 `json:"serviceFeeRate"`
	PriceCapMultiplier float64 `json:"priceCapMultiplier"`
	MinResaleLeadHours float64 `json:"minResaleLeadHours"`
}
