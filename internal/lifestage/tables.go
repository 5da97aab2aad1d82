package lifestage

// Child life stage names.
const (
	StageInfant     = "infant"
	StageToddler    = "toddler"
	StagePreschool  = "preschool"
	StageSchoolAge  = "school_age"
	StageTeen       = "teen"
	StageYoungAdult = "young_adult"
	StageAdult      = "adult"
	StageUnknown    = "unknown"
)

// Transition period names.
const (
	TransitionNewborn      = "newborn_transition"
	TransitionChildcare    = "childcare_transition"
	TransitionSchool       = "school_transition"
	TransitionMiddleSchool = "middle_school_transition"
	TransitionHighSchool   = "high_school_transition"
	TransitionCollege      = "college_transition"
	TransitionEmptyNest    = "empty_nest_transition"
)

type stageBand struct {
	name   string
	minAge float64
	maxAge float64
	desc   string
}

var stageBands = []stageBand{
	{StageInfant, 0, 1.99, "Babies under 2 years old"},
	{StageToddler, 2, 4.99, "Children 2-4 years old"},
	{StagePreschool, 5, 6.99, "Children 5-6 years old"},
	{StageSchoolAge, 7, 12.99, "Children 7-12 years old"},
	{StageTeen, 13, 18.99, "Teenagers 13-18 years old"},
	{StageYoungAdult, 19, 24.99, "Young adults 19-24 years old"},
}

// stageTaskMultipliers weights named tasks by each child life stage.
var stageTaskMultipliers = map[string]map[string]float64{
	StageInfant: {
		"Sleep Management":     1.5,
		"Feeding":              1.5,
		"Physical Care":        1.4,
		"Health Monitoring":    1.3,
		"Emotional Bonding":    1.2,
		"Development Support":  1.1,
		"Household Management": 1.3,
		"Social Activities":    0.7,
		"Personal Time":        0.7,
		"Career Development":   0.8,
	},
	StageToddler: {
		"Safety Management":     1.5,
		"Emotional Development": 1.4,
		"Routine Establishment": 1.3,
		"Social Skills":         1.2,
		"Physical Activity":     1.3,
		"Nutrition Management":  1.3,
		"Behavioral Guidance":   1.4,
		"Household Management":  1.2,
		"Social Activities":     0.9,
		"Personal Time":         0.8,
	},
	StagePreschool: {
		"Early Education":      1.4,
		"Social Development":   1.3,
		"Independence Skills":  1.3,
		"Creative Activities":  1.2,
		"School Preparation":   1.4,
		"Emotional Coaching":   1.3,
		"Communication Skills": 1.3,
		"Household Management": 1.1,
		"Social Activities":    1.0,
		"Personal Time":        0.9,
	},
	StageSchoolAge: {
		"Academic Support":           1.4,
		"Extracurricular Activities": 1.3,
		"Friend Management":          1.2,
		"Transportation":             1.3,
		"Life Skills Teaching":       1.2,
		"Technology Management":      1.2,
		"Sports/Activities":          1.3,
		"Household Management":       1.0,
		"Social Activities":          1.1,
		"Personal Time":              1.0,
	},
	StageTeen: {
		"Academic Guidance":       1.3,
		"Emotional Support":       1.4,
		"Independence Fostering":  1.3,
		"College/Future Planning": 1.4,
		"Social Navigation":       1.2,
		"Identity Development":    1.2,
		"Driving/Transportation":  1.3,
		"Boundaries Setting":      1.3,
		"Household Management":    1.0,
		"Social Activities":       1.2,
		"Personal Time":           1.1,
	},
	StageYoungAdult: {
		"Career Guidance":       1.2,
		"Life Skills Support":   1.3,
		"Financial Education":   1.4,
		"Emotional Support":     1.3,
		"Independence Support":  1.2,
		"Relationship Guidance": 1.1,
		"Household Management":  0.9,
		"Social Activities":     1.2,
		"Personal Time":         1.2,
		"Career Development":    1.2,
	},
}

// transitionTaskMultipliers weights named tasks during transition windows.
var transitionTaskMultipliers = map[string]map[string]float64{
	TransitionNewborn: {
		"Sleep Management":     1.8,
		"Feeding":              1.7,
		"Physical Care":        1.6,
		"Health Monitoring":    1.5,
		"Partner Support":      1.6,
		"Household Management": 1.5,
		"Outside Support":      1.4,
		"Self-Care":            1.5,
	},
	TransitionChildcare: {
		"Childcare Logistics":  1.5,
		"Emotional Adjustment": 1.4,
		"New Routines":         1.3,
		"Health Management":    1.3,
		"Work Balance":         1.4,
	},
	TransitionSchool: {
		"School Preparation":  1.5,
		"Educational Support": 1.4,
		"Social Adjustment":   1.3,
		"New Routines":        1.3,
		"After-School Care":   1.4,
	},
	TransitionMiddleSchool: {
		"Academic Support":      1.4,
		"Social Navigation":     1.5,
		"Independence Training": 1.3,
		"Emotional Support":     1.4,
		"Technology Management": 1.3,
	},
	TransitionHighSchool: {
		"Academic Planning":        1.4,
		"Future Discussions":       1.3,
		"Increased Independence":   1.3,
		"Peer Pressure Support":    1.4,
		"Transportation Logistics": 1.3,
	},
	TransitionCollege: {
		"College Preparation":  1.5,
		"Financial Planning":   1.4,
		"Life Skills Training": 1.4,
		"Emotional Support":    1.3,
		"Logistics Support":    1.3,
	},
	TransitionEmptyNest: {
		"Relationship Rekindling": 1.4,
		"Personal Rediscovery":    1.3,
		"Home Reorganization":     1.2,
		"Long-distance Support":   1.3,
		"New Routines":            1.2,
	},
}

// stageCategoryAdjustments shifts whole task categories per stage.
var stageCategoryAdjustments = map[string]map[string]float64{
	StageInfant: {
		"Visible Parental Tasks":   1.3,
		"Invisible Parental Tasks": 1.4,
	},
	StageToddler: {
		"Visible Parental Tasks":   1.2,
		"Invisible Parental Tasks": 1.3,
	},
	StagePreschool: {
		"Education Support": 1.2,
	},
	StageSchoolAge: {
		"Education Support": 1.3,
		"Social Management": 1.1,
	},
	StageTeen: {
		"Emotional Support": 1.3,
		"Education Support": 1.2,
	},
}

// transitionCategoryAdjustments shifts categories during transitions.
var transitionCategoryAdjustments = map[string]map[string]float64{
	TransitionNewborn: {
		"Invisible Parental Tasks": 1.5,
		"Visible Parental Tasks":   1.4,
	},
	TransitionSchool: {
		"Education Support": 1.4,
	},
	TransitionEmptyNest: {
		"Emotional Support": 1.3,
	},
}

// importantAreas names key development areas per stage, used in
// recommendation payloads.
var importantAreas = map[string][]string{
	StageInfant: {
		"Physical development and motor skills",
		"Sleep patterns and routines",
		"Feeding and nutrition",
		"Parent-child bonding",
		"Sensory development",
	},
	StageToddler: {
		"Language development",
		"Social skills and sharing",
		"Emotional regulation",
		"Potty training",
		"Independence and autonomy",
	},
	StagePreschool: {
		"Pre-literacy and numeracy skills",
		"Creativity and imagination",
		"Peer relationships",
		"Following instructions",
		"Fine motor skills",
	},
	StageSchoolAge: {
		"Academic foundations",
		"Friendship skills",
		"Responsibility and chores",
		"Time management",
		"Interests and activities exploration",
	},
	StageTeen: {
		"Identity development",
		"Independence with guidance",
		"Academic/career planning",
		"Healthy relationships",
		"Digital citizenship",
	},
	StageYoungAdult: {
		"Life skills mastery",
		"Financial literacy",
		"Career development",
		"Healthy adult relationships",
		"Independence with support",
	},
}

// transitionApproaches suggests concrete approaches per transition.
var transitionApproaches = map[string][]string{
	TransitionNewborn: {
		"Establish supportive routines for both baby and parents",
		"Prioritize rest and recovery for primary caregiver",
		"Communicate openly about needs and challenges",
		"Accept and ask for help from support networks",
		"Focus on bonding and connection over perfection",
	},
	TransitionChildcare: {
		"Prepare child with visits and positive conversations",
		"Create consistent drop-off routines",
		"Expect adjustment period with possible behavioral changes",
		"Maintain close communication with care providers",
		"Create special reconnection rituals for pickup time",
	},
	TransitionSchool: {
		"Visit the school and meet teachers before first day",
		"Practice school routines before school starts",
		"Create organized homework and study spaces",
		"Establish clear morning and after-school routines",
		"Connect with other parents and school community",
	},
	TransitionMiddleSchool: {
		"Help develop organizational systems for multiple classes",
		"Maintain open communication about social challenges",
		"Balance increasing independence with monitoring",
		"Support healthy friend relationships",
		"Prepare for physical and emotional changes of puberty",
	},
	TransitionHighSchool: {
		"Encourage academic ownership and self-advocacy",
		"Guide extracurricular involvement for college planning",
		"Discuss teenage social pressures openly",
		"Teach time management with greater responsibilities",
		"Balance monitoring with increasing independence",
	},
	TransitionCollege: {
		"Teach practical life skills before departure",
		"Discuss expectations for communication and visits",
		"Prepare for emotional adjustment for whole family",
		"Support without solving all problems",
		"Redefine your relationship as they become adults",
	},
	TransitionEmptyNest: {
		"Reconnect as a couple and redefine relationship",
		"Explore new interests and activities",
		"Establish new communication patterns with adult children",
		"Redefine home spaces and routines",
		"Acknowledge and process mixed emotions",
	},
}

// Resource is one content pointer surfaced with recommendations.
type Resource struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	LifeStage   string `json:"life_stage,omitempty"`
	Transition  string `json:"transition,omitempty"`
	Description string `json:"description"`
}

var stageResources = map[string]Resource{
	StageInfant: {
		Title:       "Infant Development Milestones",
		Type:        "article",
		LifeStage:   StageInfant,
		Description: "Understanding your baby's developmental progress",
	},
	StageToddler: {
		Title:       "Navigating Toddler Tantrums",
		Type:        "guide",
		LifeStage:   StageToddler,
		Description: "Strategies for helping toddlers manage emotions",
	},
	StagePreschool: {
		Title:       "School Readiness Checklist",
		Type:        "checklist",
		LifeStage:   StagePreschool,
		Description: "Preparing your child for kindergarten success",
	},
	StageSchoolAge: {
		Title:       "Supporting Elementary School Success",
		Type:        "article",
		LifeStage:   StageSchoolAge,
		Description: "How parents can support learning and development",
	},
	StageTeen: {
		Title:       "Communicating with Your Teen",
		Type:        "guide",
		LifeStage:   StageTeen,
		Description: "Building open communication during the teenage years",
	},
}

var transitionResources = map[string]Resource{
	TransitionNewborn: {
		Title:       "Fourth Trimester Survival Guide",
		Type:        "guide",
		Transition:  TransitionNewborn,
		Description: "Supporting new parents through the first 12 weeks",
	},
	TransitionSchool: {
		Title:       "First Day of School Preparation",
		Type:        "checklist",
		Transition:  TransitionSchool,
		Description: "Making the transition to elementary school smooth",
	},
	TransitionCollege: {
		Title:       "Launching Your Young Adult",
		Type:        "course",
		Transition:  TransitionCollege,
		Description: "Supporting independence while maintaining connection",
	},
}
