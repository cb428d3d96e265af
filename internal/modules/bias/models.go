package bias

// BiasType identifies a detected behavioral pattern
type BiasType string

const (
	PanicSelling      BiasType = "PANIC_SELLING"
	FOMOBuying        BiasType = "FOMO_BUYING"
	ConcentrationRisk BiasType = "CONCENTRATION_RISK"
)

// DetectedBias is one flagged event. RelatedTransactionID is nil for
// portfolio-level findings such as concentration risk.
type DetectedBias struct {
	BiasType             BiasType `json:"bias_type"`
	EventTimestamp       string   `json:"event_timestamp"`
	Description          string   `json:"description"`
	RelatedTransactionID *string  `json:"related_transaction_id"`
}
