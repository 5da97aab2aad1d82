package culture

import (
	"context"
	"time"
)

// Suggestion is a culturally grounded recommendation for a topic.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
}

// Suggestions is the payload returned for a topic area.
type Suggestions struct {
	FamilyID       string       `json:"family_id"`
	Topic          string       `json:"topic"`
	ValueSystem    string       `json:"value_system,omitempty"`
	HasSuggestions bool         `json:"has_suggestions"`
	Message        string       `json:"message,omitempty"`
	GeneratedAt    time.Time    `json:"generated_at,omitempty"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
}

// Suggest builds topic-specific guidance from the family's latest
// cultural analysis.
func (s *Service) Suggest(ctx context.Context, familyID, topic string) (*Suggestions, error) {
	analysis, err := s.Latest(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if analysis.ValueSystem == "" {
		return &Suggestions{
			FamilyID:       familyID,
			Topic:          topic,
			HasSuggestions: false,
			Message:        "Insufficient cultural context information",
		}, nil
	}

	out := &Suggestions{
		FamilyID:       familyID,
		Topic:          topic,
		ValueSystem:    analysis.ValueSystem,
		HasSuggestions: true,
		GeneratedAt:    time.Now().UTC(),
	}

	switch topic {
	case "parenting_approach":
		out.Suggestions = parentingSuggestions(analysis)
	case "family_activities":
		out.Suggestions = activitySuggestions(analysis)
	case "education":
		out.Suggestions = educationSuggestions(analysis)
	case "communication":
		out.Suggestions = communicationSuggestions(analysis)
	case "discipline":
		out.Suggestions = disciplineSuggestions(analysis)
	default:
		out.Suggestions = generalSuggestions(analysis)
	}
	return out, nil
}

func parentingSuggestions(a *Analysis) []Suggestion {
	var out []Suggestion
	switch a.Dimensions[DimIndividualism] {
	case LevelHigh:
		out = append(out,
			Suggestion{"Support Individual Development", "In your cultural context, supporting children's individual identity development is highly valued. Provide opportunities for self-expression and personal choice.", "high"},
			Suggestion{"Encourage Independence", "Foster age-appropriate independence by allowing children to make decisions and solve problems on their own when possible.", "high"})
	case LevelLow:
		out = append(out,
			Suggestion{"Emphasize Family Identity", "In your cultural context, a strong sense of family identity is valued. Regular family traditions and activities that emphasize togetherness can support this.", "high"},
			Suggestion{"Connection to Extended Family", "Maintain strong connections with extended family members, involving them in childrearing and family decisions when appropriate.", "high"})
	}

	switch a.ValueSystem {
	case SystemWesternIndividualist:
		out = append(out, Suggestion{"Balance Praise and Feedback", "Specific praise for effort rather than just outcomes can help develop a growth mindset while supporting self-esteem.", "medium"})
	case SystemEastAsianCollectivist:
		out = append(out, Suggestion{"Academic Excellence and Balance", "While academic excellence is highly valued, ensure children also develop social skills and emotional well-being.", "medium"})
	case SystemSouthAsianFamilyCentric:
		out = append(out, Suggestion{"Intergenerational Wisdom", "Create opportunities for children to learn from grandparents and elders, valuing their cultural knowledge and experience.", "medium"})
	}
	return out
}

func activitySuggestions(a *Analysis) []Suggestion {
	switch a.ValueSystem {
	case SystemWesternIndividualist:
		return []Suggestion{
			{"Child-Interest Activities", "Plan family activities that rotate around each child's interests, supporting individual identity while creating family bonding.", "high"},
			{"Achievement Celebration", "Create special celebrations for individual achievements, recognizing each family member's unique accomplishments.", "medium"},
		}
	case SystemEastAsianCollectivist:
		return []Suggestion{
			{"Cultural Heritage Activities", "Participate in activities that connect children to their cultural heritage, such as language learning, traditional arts, or cultural celebrations.", "high"},
			{"Family Skill Building", "Engage in activities where family members learn and develop skills together, emphasizing shared progress over individual competition.", "medium"},
		}
	case SystemLatinAmericanFamilial:
		return []Suggestion{
			{"Extended Family Gatherings", "Regular gatherings with extended family help maintain strong family bonds and cultural connections across generations.", "high"},
			{"Cultural Celebrations", "Participation in traditional celebrations and festivals helps children develop cultural identity and family connection.", "high"},
		}
	case SystemNordicEgalitarian:
		return []Suggestion{
			{"Outdoor Family Activities", "Regular outdoor activities regardless of weather foster resilience and connection to nature, highly valued in Nordic traditions.", "high"},
			{"Democratic Family Planning", "Include children in planning family activities and vacations, giving them age-appropriate input into decisions.", "medium"},
		}
	case SystemIndigenousCommunity:
		return []Suggestion{
			{"Nature Connection", "Activities that connect children to natural environments and traditional lands help develop cultural identity and environmental stewardship.", "high"},
			{"Cultural Storytelling", "Share traditional stories and teachings, connecting children to cultural wisdom and community values.", "high"},
		}
	default:
		return []Suggestion{
			{"Family Traditions", "Develop unique family traditions that reflect your values and create meaningful memories together.", "medium"},
		}
	}
}

func educationSuggestions(a *Analysis) []Suggestion {
	var out []Suggestion
	switch a.Dimensions[DimLongTerm] {
	case LevelHigh:
		out = append(out, Suggestion{"Future-Focused Learning", "Emphasize how current learning connects to future opportunities. Help children develop long-term educational goals.", "high"})
	case LevelLow:
		out = append(out, Suggestion{"Practical Application", "Focus on how learning applies to immediate practical situations. Connect abstract concepts to real-world experiences.", "high"})
	}

	switch a.ValueSystem {
	case SystemEastAsianCollectivist:
		out = append(out,
			Suggestion{"Academic Excellence", "Support high academic achievement through structured study routines and recognizing educational accomplishments.", "high"},
			Suggestion{"Balanced Development", "While maintaining focus on academics, ensure children also develop creative thinking and social-emotional skills.", "medium"})
	case SystemWesternIndividualist:
		out = append(out,
			Suggestion{"Critical Thinking", "Encourage questioning and independent thinking. Engage children in discussions that develop analytical skills.", "high"},
			Suggestion{"Passion-Based Learning", "Support children in deeply exploring subjects they are passionate about, even outside standard curriculum.", "medium"})
	case SystemIndigenousCommunity:
		out = append(out,
			Suggestion{"Cultural Knowledge Integration", "Connect traditional knowledge with formal education. Involve community elders in children's learning when possible.", "high"},
			Suggestion{"Environmental Learning", "Incorporate learning that connects to land, ecology, and sustainable practices, bridging cultural values with contemporary education.", "high"})
	}
	return out
}

func communicationSuggestions(a *Analysis) []Suggestion {
	var out []Suggestion
	switch a.Dimensions[DimPowerDistance] {
	case LevelHigh:
		out = append(out, Suggestion{"Respectful Communication", "Maintain clear parent-child boundaries while creating safe space for children to express themselves. Emphasize respectful tone and language.", "high"})
	case LevelLow:
		out = append(out, Suggestion{"Open Dialogue", "Encourage children to express opinions openly. Explain reasoning behind rules and decisions rather than simply enforcing them.", "high"})
	}

	switch a.ValueSystem {
	case SystemLatinAmericanFamilial:
		out = append(out, Suggestion{"Emotional Expression", "Create space for open emotional expression and affection. Help children develop emotional vocabulary to express their feelings.", "high"})
	case SystemMiddleEasternTraditional:
		out = append(out, Suggestion{"Respectful Discourse", "Model and teach respectful communication, especially with elders. Help children understand appropriate ways to express disagreement.", "high"})
	case SystemNordicEgalitarian:
		out = append(out, Suggestion{"Direct Communication", "Value straightforward, honest communication. Discuss problems directly rather than through hints or indirect approaches.", "high"})
	}
	return out
}

func disciplineSuggestions(a *Analysis) []Suggestion {
	var out []Suggestion
	switch a.Dimensions[DimIndulgence] {
	case LevelHigh:
		out = append(out, Suggestion{"Natural Consequences", "Allow children to experience the natural consequences of their actions when safe to do so. This helps develop internal motivation rather than external control.", "high"})
	case LevelLow:
		out = append(out, Suggestion{"Clear Structure", "Provide clear rules and consistent expectations. Help children develop self-discipline and understand the importance of restraint.", "high"})
	}
	switch a.Dimensions[DimUncertainty] {
	case LevelHigh:
		out = append(out, Suggestion{"Predictable Consequences", "Establish clear, consistent consequences for behavior. Avoid unpredictable or arbitrary discipline approaches.", "high"})
	case LevelLow:
		out = append(out, Suggestion{"Flexible Guidance", "Adapt discipline approaches to specific situations and individual children. Focus on teaching rather than strict rule enforcement.", "high"})
	}
	return out
}

func generalSuggestions(a *Analysis) []Suggestion {
	var out []Suggestion
	switch a.ValueSystem {
	case SystemWesternIndividualist:
		out = append(out, Suggestion{"Balance Independence and Support", "While fostering independence, ensure children know support is available when needed. Create safe space for trying new things.", "high"})
	case SystemEastAsianCollectivist:
		out = append(out, Suggestion{"Family Harmony and Individual Growth", "Balance emphasis on family harmony with supporting each child's individual development and personal interests.", "high"})
	case SystemSouthAsianFamilyCentric:
		out = append(out, Suggestion{"Intergenerational Connection", "Foster strong connections between children and extended family members, particularly grandparents and elders.", "high"})
	case SystemLatinAmericanFamilial:
		out = append(out, Suggestion{"Celebratory Traditions", "Maintain and create family celebrations that honor achievements, milestones, and cultural traditions.", "high"})
	case SystemAfricanCommunal:
		out = append(out, Suggestion{"Community Wisdom", "Connect children with community elders and resources that support their development beyond the nuclear family.", "high"})
	case SystemMiddleEasternTraditional:
		out = append(out, Suggestion{"Honor and Responsibility", "Help children understand the connection between personal behavior and family honor, emphasizing positive responsibility.", "high"})
	case SystemNordicEgalitarian:
		out = append(out, Suggestion{"Balanced Family Roles", "Model and teach gender equality through balanced distribution of family responsibilities and decision-making.", "high"})
	case SystemIndigenousCommunity:
		out = append(out, Suggestion{"Environmental Connection", "Foster children's connection to land, nature, and sustainable practices as part of cultural identity development.", "high"})
	}

	// Inferred contexts are often blended; nudge toward explicit
	// multicultural framing.
	if !a.Explicit {
		out = append(out, Suggestion{"Bicultural Integration", "Help children integrate different cultural influences by explicitly discussing cultural values and practices, allowing them to develop a healthy multicultural identity.", "medium"})
	}
	return out
}
