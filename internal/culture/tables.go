package culture

// Cultural dimensions, after Hofstede.
const (
	DimIndividualism    = "individualism_collectivism"
	DimPowerDistance    = "power_distance"
	DimUncertainty      = "uncertainty_avoidance"
	DimMasculinity      = "masculinity_femininity"
	DimLongTerm         = "long_term_orientation"
	DimIndulgence       = "indulgence_restraint"
)

// Dimension levels.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// Value systems a family can select or be classified into.
const (
	SystemWesternIndividualist     = "western_individualist"
	SystemEastAsianCollectivist    = "east_asian_collectivist"
	SystemSouthAsianFamilyCentric  = "south_asian_family_centric"
	SystemLatinAmericanFamilial    = "latin_american_familial"
	SystemAfricanCommunal          = "african_communal"
	SystemMiddleEasternTraditional = "middle_eastern_traditional"
	SystemNordicEgalitarian        = "nordic_egalitarian"
	SystemIndigenousCommunity      = "indigenous_community"
)

// dimensionAdjustments maps a dimension level to the task-name
// multipliers it implies. Medium levels carry no adjustments.
var dimensionAdjustments = map[string]map[string]map[string]float64{
	DimIndividualism: {
		LevelHigh: {
			"Personal Time":           1.3,
			"Individual Goals":        1.3,
			"Child Independence":      1.25,
			"Self-Care":               1.2,
			"Career Development":      1.15,
			"Extended Family Support": 0.8,
			"Community Integration":   0.85,
		},
		LevelLow: {
			"Extended Family Support":  1.3,
			"Community Integration":    1.25,
			"Family Reputation":        1.2,
			"Collective Celebrations":  1.2,
			"Multi-generational Living": 1.25,
			"Personal Time":            0.9,
			"Individual Goals":         0.85,
		},
	},
	DimPowerDistance: {
		LevelHigh: {
			"Parental Authority":       1.3,
			"Respect for Elders":       1.25,
			"Formal Education":         1.2,
			"Family Hierarchy":         1.15,
			"Respectful Communication": 1.15,
			"Child-Led Activities":     0.85,
			"Negotiated Boundaries":    0.8,
		},
		LevelLow: {
			"Child-Led Activities":      1.2,
			"Democratic Family Process": 1.15,
			"Negotiated Boundaries":     1.15,
			"Child Autonomy":            1.2,
			"Informal Learning":         1.1,
			"Parental Authority":        0.9,
			"Family Hierarchy":          0.85,
		},
	},
	DimUncertainty: {
		LevelHigh: {
			"Structured Routines":    1.3,
			"Educational Planning":   1.25,
			"Safety Protocols":       1.2,
			"Financial Security":     1.2,
			"Preparation Activities": 1.15,
			"Spontaneous Events":     0.8,
			"Risk-Taking Activities": 0.75,
		},
		LevelLow: {
			"Flexibility":            1.2,
			"Adaptability":           1.15,
			"Creative Exploration":   1.2,
			"Risk-Taking Activities": 1.15,
			"Spontaneous Events":     1.1,
			"Structured Routines":    0.9,
			"Rigid Scheduling":       0.8,
		},
	},
	DimMasculinity: {
		LevelHigh: {
			"Achievement Recognition": 1.3,
			"Competitive Activities":  1.25,
			"Career Success":          1.2,
			"Academic Excellence":     1.2,
			"Financial Achievement":   1.15,
			"Emotional Expression":    0.85,
			"Work-Life Balance":       0.9,
		},
		LevelLow: {
			"Work-Life Balance":      1.3,
			"Emotional Expression":   1.25,
			"Relationship Nurturing": 1.2,
			"Inclusive Activities":   1.15,
			"Collaborative Projects": 1.1,
			"Competitive Activities": 0.85,
			"Status Symbols":         0.8,
		},
	},
	DimLongTerm: {
		LevelHigh: {
			"Educational Investment": 1.3,
			"Financial Planning":     1.25,
			"Tradition Preservation": 1.2,
			"Future Planning":        1.2,
			"Delayed Gratification":  1.15,
			"Immediate Gratification": 0.8,
			"Short-term Rewards":     0.85,
		},
		LevelLow: {
			"Present Enjoyment":      1.2,
			"Immediate Family Needs": 1.15,
			"Current Celebration":    1.1,
			"Quick Results":          1.1,
			"Short-term Rewards":     1.15,
			"Long-term Planning":     0.9,
			"Delayed Gratification":  0.85,
		},
	},
	DimIndulgence: {
		LevelHigh: {
			"Leisure Activities":    1.25,
			"Play Time":             1.2,
			"Self-Expression":       1.15,
			"Experiential Learning": 1.15,
			"Family Fun":            1.1,
			"Discipline Structures": 0.9,
			"Impulse Control":       0.85,
		},
		LevelLow: {
			"Discipline Structures":      1.2,
			"Impulse Control":            1.15,
			"Educational Focus":          1.15,
			"Work Ethic":                 1.2,
			"Responsibility Development": 1.15,
			"Leisure Activities":         0.9,
			"Free Play":                  0.85,
		},
	},
}

// systemProfiles assigns each value system its dimension levels.
var systemProfiles = map[string]map[string]string{
	SystemWesternIndividualist: {
		DimIndividualism: LevelHigh,
		DimPowerDistance: LevelLow,
		DimUncertainty:   LevelMedium,
		DimMasculinity:   LevelMedium,
		DimLongTerm:      LevelLow,
		DimIndulgence:    LevelHigh,
	},
	SystemEastAsianCollectivist: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelHigh,
		DimUncertainty:   LevelHigh,
		DimMasculinity:   LevelHigh,
		DimLongTerm:      LevelHigh,
		DimIndulgence:    LevelLow,
	},
	SystemSouthAsianFamilyCentric: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelHigh,
		DimUncertainty:   LevelMedium,
		DimMasculinity:   LevelHigh,
		DimLongTerm:      LevelHigh,
		DimIndulgence:    LevelLow,
	},
	SystemLatinAmericanFamilial: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelHigh,
		DimUncertainty:   LevelHigh,
		DimMasculinity:   LevelMedium,
		DimLongTerm:      LevelLow,
		DimIndulgence:    LevelHigh,
	},
	SystemAfricanCommunal: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelHigh,
		DimUncertainty:   LevelMedium,
		DimMasculinity:   LevelMedium,
		DimLongTerm:      LevelMedium,
		DimIndulgence:    LevelMedium,
	},
	SystemMiddleEasternTraditional: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelHigh,
		DimUncertainty:   LevelHigh,
		DimMasculinity:   LevelHigh,
		DimLongTerm:      LevelMedium,
		DimIndulgence:    LevelLow,
	},
	SystemNordicEgalitarian: {
		DimIndividualism: LevelMedium,
		DimPowerDistance: LevelLow,
		DimUncertainty:   LevelLow,
		DimMasculinity:   LevelLow,
		DimLongTerm:      LevelHigh,
		DimIndulgence:    LevelHigh,
	},
	SystemIndigenousCommunity: {
		DimIndividualism: LevelLow,
		DimPowerDistance: LevelMedium,
		DimUncertainty:   LevelMedium,
		DimMasculinity:   LevelLow,
		DimLongTerm:      LevelHigh,
		DimIndulgence:    LevelMedium,
	},
}

// specialTaskCategories lists task areas with elevated significance
// per value system.
var specialTaskCategories = map[string][]string{
	SystemWesternIndividualist: {
		"Personal Development",
		"Individual Sports",
		"Self-expression",
		"Career Advancement",
		"Nuclear Family Activities",
	},
	SystemEastAsianCollectivist: {
		"Academic Excellence",
		"Family Reputation",
		"Intergenerational Respect",
		"Group Achievement",
		"Filial Responsibility",
	},
	SystemSouthAsianFamilyCentric: {
		"Extended Family Integration",
		"Cultural Traditions",
		"Family Celebrations",
		"Academic Achievement",
		"Community Standing",
	},
	SystemLatinAmericanFamilial: {
		"Family Celebrations",
		"Multi-generational Gatherings",
		"Religious Traditions",
		"Extended Family Support",
		"Cultural Heritage",
	},
	SystemAfricanCommunal: {
		"Community Involvement",
		"Collective Responsibility",
		"Elder Wisdom",
		"Extended Family Support",
		"Cultural Storytelling",
	},
	SystemMiddleEasternTraditional: {
		"Family Honor",
		"Religious Observance",
		"Elder Care",
		"Gender Role Traditions",
		"Extended Family Relations",
	},
	SystemNordicEgalitarian: {
		"Work-Life Balance",
		"Gender Equality",
		"Outdoor Activities",
		"Child Autonomy",
		"Shared Parenting",
	},
	SystemIndigenousCommunity: {
		"Land Connection",
		"Cultural Preservation",
		"Intergenerational Teaching",
		"Natural World Education",
		"Community Celebration",
	},
}

// Insight is a short observation tied to a topic.
type Insight struct {
	Topic string `json:"topic"`
	Text  string `json:"insight"`
}

var systemInsights = map[string][]Insight{
	SystemWesternIndividualist: {
		{"Parenting Focus", "In Western individualist cultures, independence and self-reliance are highly valued. Parenting often focuses on developing a child's autonomy and personal identity."},
		{"Achievement Recognition", "Personal achievement and self-expression are typically emphasized over group harmony. Consider recognizing individual accomplishments."},
	},
	SystemEastAsianCollectivist: {
		{"Education Priority", "Academic achievement is typically highly valued in East Asian cultures. Educational support and academic development may be prioritized tasks."},
		{"Family Responsibility", "Filial piety and family hierarchy are important values. Children may be expected to contribute to family well-being earlier than in Western contexts."},
	},
	SystemSouthAsianFamilyCentric: {
		{"Extended Family", "Extended family relationships are often central, with grandparents and other relatives playing significant roles in childrearing and family decisions."},
		{"Cultural Traditions", "Maintaining cultural traditions and participating in cultural celebrations may be important family responsibilities."},
	},
	SystemLatinAmericanFamilial: {
		{"Family Bonds", "Family connections and loyalty are central values. Regular family gatherings and maintaining close relationships are often high priorities."},
		{"Emotional Expression", "Open emotional expression and affection are typically valued. Creating warm, expressive family environments may be emphasized."},
	},
	SystemAfricanCommunal: {
		{"Community Involvement", "The wider community often plays a significant role in child-rearing, with shared responsibility for children's development."},
		{"Respect for Elders", "Respecting elders and learning from their wisdom is typically valued. Intergenerational relationships may be emphasized."},
	},
	SystemMiddleEasternTraditional: {
		{"Family Honor", "Family reputation and honor are often highly valued. Children may be raised with strong awareness of how their behavior reflects on the family."},
		{"Gender Roles", "Traditional gender roles may influence task distribution, though many families balance tradition with contemporary approaches."},
	},
	SystemNordicEgalitarian: {
		{"Gender Equality", "Equal parenting and balanced workload between parents is culturally valued. Tasks may be distributed with minimal gender distinction."},
		{"Child Autonomy", "Children are often given significant autonomy from an early age, with emphasis on developing independent decision-making."},
	},
	SystemIndigenousCommunity: {
		{"Connection to Land", "Developing children's connection to ancestral lands and natural environments may be a valued aspect of parenting."},
		{"Cultural Preservation", "Passing down cultural knowledge, language, and traditions is often a central family responsibility."},
	},
}
