package events

const (
	SubjectCalcCompleted    = "fairload.calc.completed"
	SubjectFeedbackReceived = "fairload.feedback.received"
	SubjectEvolutionCycle   = "fairload.evolution.cycle"

	StreamName   = "FAIRLOAD"
	StreamMaxAge = "720h" // 30 days
)

// Family-scoped events carry the family id in the subject so consumers
// can subscribe per family or with a wildcard (fairload.burnout.*.alert).
func SubjectFamilyCalc(familyID string) string    { return "fairload.calc." + familyID + ".completed" }
func SubjectFamilyBalance(familyID string) string { return "fairload.balance." + familyID + ".computed" }
func SubjectFamilyBurnout(familyID string) string { return "fairload.burnout." + familyID + ".alert" }
