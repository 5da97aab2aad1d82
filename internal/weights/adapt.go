package weights

// Adaptation records one adjustment pass applied on top of a base
// calculation. Passes append to a caller-owned list so each pass's
// effect stays auditable without any shared mutable context.
type Adaptation struct {
	Type         string                 `json:"type"`
	Multiplier   float64                `json:"multiplier"`
	BeforeWeight float64                `json:"before_weight"`
	AfterWeight  float64                `json:"after_weight"`
	Context      map[string]interface{} `json:"context,omitempty"`
}
