package weights

// Multiplier tables are loaded once and never mutated at runtime.
// Unknown or absent keys always fall back to a neutral 1.0.

var frequencyMultipliers = map[string]float64{
	"daily":     1.5,
	"several":   1.3,
	"weekly":    1.2,
	"monthly":   1.0,
	"quarterly": 0.8,
	"yearly":    0.7,
	"seasonal":  0.9,
}

var invisibilityMultipliers = map[string]float64{
	"highly":     1.0,
	"partially":  1.2,
	"mostly":     1.35,
	"completely": 1.5,
}

var emotionalLaborMultipliers = map[string]float64{
	"minimal":  1.0,
	"low":      1.1,
	"moderate": 1.2,
	"high":     1.3,
	"extreme":  1.4,
}

var researchImpactMultipliers = map[string]float64{
	"high":     1.3,
	"medium":   1.15,
	"standard": 1.0,
}

var childDevelopmentMultipliers = map[string]float64{
	"high":     1.25,
	"moderate": 1.15,
	"limited":  1.0,
}

// Priority multipliers by rank of the task's category in the family's
// priority settings.
const (
	priorityHighest   = 1.5
	prioritySecondary = 1.3
	priorityTertiary  = 1.1
	priorityNone      = 1.0
)

var timeRequiredMultipliers = map[string]float64{
	"minimal":     0.8,
	"short":       0.9,
	"moderate":    1.0,
	"extended":    1.2,
	"significant": 1.4,
}

var skillComplexityMultipliers = map[string]float64{
	"simple":      0.9,
	"basic":       1.0,
	"moderate":    1.1,
	"complex":     1.2,
	"specialized": 1.3,
}

// Seasonal swing applied only when a task declares a relevant season.
const (
	seasonalBoost   = 1.3
	seasonalDiscount = 0.7
)

// lifeStageChildMultipliers adjusts child-related tasks by the child's
// life stage and the task's child-care category. The maximum across a
// family's children wins when several apply.
var lifeStageChildMultipliers = map[string]map[string]float64{
	"infant": {
		"feeding":     1.4,
		"sleep":       1.3,
		"health":      1.3,
		"development": 1.2,
	},
	"toddler": {
		"safety":        1.4,
		"feeding":       1.2,
		"development":   1.3,
		"socialization": 1.1,
	},
	"preschool": {
		"education":     1.3,
		"socialization": 1.2,
		"emotional":     1.3,
		"independence":  1.2,
	},
	"school_age": {
		"education":    1.4,
		"activities":   1.3,
		"independence": 1.1,
		"friends":      1.2,
	},
	"teen": {
		"independence": 1.3,
		"guidance":     1.4,
		"academic":     1.3,
		"emotional":    1.4,
	},
}

// culturalContextMultipliers adjusts tasks tagged with a cultural
// category according to the family's broad cultural context.
var culturalContextMultipliers = map[string]map[string]float64{
	"collectivist": {
		"family_support":      0.8,
		"elder_care":          1.2,
		"communal_activities": 1.1,
	},
	"individualist": {
		"personal_space":        1.2,
		"independence_training": 1.3,
		"scheduled_activities":  1.1,
	},
}

// CategoryWeights are the relative base weights of the ten task
// categories used by the balance scorer.
var CategoryWeights = map[string]float64{
	"Visible Household Tasks":   1.0,
	"Invisible Household Tasks": 1.2,
	"Visible Parental Tasks":    1.1,
	"Invisible Parental Tasks":  1.5,
	"Administrative Tasks":      1.3,
	"Financial Tasks":           1.2,
	"Emotional Support":         1.4,
	"Healthcare Management":     1.3,
	"Education Support":         1.2,
	"Social Management":         1.1,
}

// Categories returns the fixed category names in no particular order.
func Categories() []string {
	names := make([]string, 0, len(CategoryWeights))
	for name := range CategoryWeights {
		names = append(names, name)
	}
	return names
}
