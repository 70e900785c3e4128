package validation

const (
	// String lengths
	MaxDescriptionLength = 5000
	MaxClaimTypeLength   = 64
	MaxLocationLength    = 255
	MaxVehicleLength     = 64
	MaxDecisionLength    = 1000

	// DateLayout is the wire format of incident dates.
	DateLayout = "2006-01-02"

	// Batch limits
	MaxFraudReviewBatch = 500
)
