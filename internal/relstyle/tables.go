package relstyle

import "github.com/fairload-app/fairload/internal/store"

// Relationship styles.
const (
	StyleTraditional   = "traditional"
	StyleEgalitarian   = "egalitarian"
	StyleComplementary = "complementary"
	StyleIndependent   = "independent"
	StyleCollaborative = "collaborative"
)

// Communication patterns.
const (
	CommDirect     = "direct"
	CommIndirect   = "indirect"
	CommEmotional  = "emotional"
	CommAnalytical = "analytical"
	CommMixed      = "mixed"
)

// Conflict resolution styles.
const (
	ConflictCompromising  = "compromising"
	ConflictAccommodating = "accommodating"
	ConflictAvoiding      = "avoiding"
	ConflictCompeting     = "competing"
	ConflictCollaborating = "collaborating"
)

// Task division approaches.
const (
	DivisionGendered     = "gendered"
	DivisionBalanced     = "balanced"
	DivisionExpertise    = "expertise_based"
	DivisionPreference   = "preference_based"
	DivisionAvailability = "availability_based"
)

// Parent labels used in category splits.
const (
	ParentMama = store.ParentMama
	ParentPapa = store.ParentPapa
)

// Split is a per-parent multiplier pair for one task category.
type Split struct {
	Mama float64 `json:"mama"`
	Papa float64 `json:"papa"`
}

func evenSplits() map[string]Split {
	return map[string]Split{
		"Visible Household Tasks":   {1.0, 1.0},
		"Invisible Household Tasks": {1.0, 1.0},
		"Visible Parental Tasks":    {1.0, 1.0},
		"Invisible Parental Tasks":  {1.0, 1.0},
		"Administrative Tasks":      {1.0, 1.0},
		"Financial Tasks":           {1.0, 1.0},
		"Emotional Support":         {1.0, 1.0},
		"Healthcare Management":     {1.0, 1.0},
		"Education Support":         {1.0, 1.0},
		"Social Management":         {1.0, 1.0},
	}
}

// styleSplits resolves the category splits a style implies. The
// complementary style has no fixed table; it defaults to a moderate
// traditional pattern until balance data says otherwise.
func styleSplits(style string) map[string]Split {
	switch style {
	case StyleTraditional:
		return map[string]Split{
			"Visible Household Tasks":   {1.3, 0.7},
			"Invisible Household Tasks": {1.4, 0.6},
			"Visible Parental Tasks":    {1.3, 0.7},
			"Invisible Parental Tasks":  {1.4, 0.6},
			"Administrative Tasks":      {1.2, 0.8},
			"Financial Tasks":           {0.7, 1.3},
			"Emotional Support":         {1.3, 0.7},
			"Healthcare Management":     {1.4, 0.6},
			"Education Support":         {1.3, 0.7},
			"Social Management":         {1.3, 0.7},
		}
	case StyleComplementary:
		return map[string]Split{
			"Visible Household Tasks":   {1.1, 0.9},
			"Invisible Household Tasks": {1.2, 0.8},
			"Visible Parental Tasks":    {1.1, 0.9},
			"Invisible Parental Tasks":  {1.2, 0.8},
			"Administrative Tasks":      {1.1, 0.9},
			"Financial Tasks":           {0.9, 1.1},
			"Emotional Support":         {1.2, 0.8},
			"Healthcare Management":     {1.2, 0.8},
			"Education Support":         {1.1, 0.9},
			"Social Management":         {1.1, 0.9},
		}
	case StyleCollaborative:
		splits := evenSplits()
		// Invisible and emotional work tends to stay slightly uneven
		// even in collaborative couples.
		splits["Invisible Household Tasks"] = Split{1.1, 0.9}
		splits["Invisible Parental Tasks"] = Split{1.1, 0.9}
		splits["Emotional Support"] = Split{1.1, 0.9}
		splits["Healthcare Management"] = Split{1.1, 0.9}
		splits["Social Management"] = Split{1.1, 0.9}
		return splits
	default: // egalitarian, independent
		return evenSplits()
	}
}
