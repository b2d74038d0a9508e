package formbricks

// LocalizedString is the single-locale text map used throughout the wire
// format. The platform supports multiple locales; this tool only ever
// supplies the default one.
type LocalizedString map[string]string

func localize(s string) LocalizedString {
	return LocalizedString{"default": s}
}

// WireSurvey mirrors the survey-creation endpoint's schema. Only the fields
// this tool populates are modeled.
type WireSurvey struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Questions     []WireQuestion `json:"questions"`
	Endings       []WireEnding   `json:"endings"`
	EnvironmentID string         `json:"environmentId"`
}

type WireQuestion struct {
	Type                   string          `json:"type"`
	Headline               LocalizedString `json:"headline"`
	Subheader              LocalizedString `json:"subheader,omitempty"`
	Required               bool            `json:"required"`
	InputType              string          `json:"inputType,omitempty"`
	Placeholder            LocalizedString `json:"placeholder,omitempty"`
	Choices                []WireChoice    `json:"choices,omitempty"`
	AllowMultipleSelection bool            `json:"allowMultipleSelection,omitempty"`
	Range                  int             `json:"range,omitempty"`
	Scale                  string          `json:"scale,omitempty"`
	LowerLabel             LocalizedString `json:"lowerLabel,omitempty"`
	UpperLabel             LocalizedString `json:"upperLabel,omitempty"`
}

type WireChoice struct {
	Label LocalizedString `json:"label"`
}

type WireEnding struct {
	Type      string          `json:"type"`
	Headline  LocalizedString `json:"headline"`
	Subheader LocalizedString `json:"subheader"`
}

// TransformSurvey maps a simplified survey document to the wire format the
// survey-creation endpoint expects. It is pure: same input, same output, no
// I/O. Malformed question fields pass through unchanged and fail at the API
// instead of here.
func TransformSurvey(s Survey, environmentID string) WireSurvey {
	questions := make([]WireQuestion, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, transformQuestion(q))
	}

	var card ThankYouCard
	if s.ThankYouCard != nil {
		card = *s.ThankYouCard
	}
	if card.Headline == "" {
		card.Headline = "Thank you!"
	}
	if card.Subheader == "" {
		card.Subheader = "We appreciate your feedback."
	}

	return WireSurvey{
		Name:      s.Name,
		Type:      "link",
		Status:    "inProgress",
		Questions: questions,
		Endings: []WireEnding{{
			Type:      "endScreen",
			Headline:  localize(card.Headline),
			Subheader: localize(card.Subheader),
		}},
		EnvironmentID: environmentID,
	}
}

func transformQuestion(q Question) WireQuestion {
	out := WireQuestion{
		Type:     q.Type,
		Headline: localize(q.Headline),
		Required: q.Required == nil || *q.Required,
	}
	if q.Subheader != "" {
		out.Subheader = localize(q.Subheader)
	}

	switch q.Type {
	case QuestionOpenText:
		out.InputType = "text"
		out.Placeholder = localize("Type your answer here...")

	case QuestionMultipleChoiceSingle, QuestionMultipleChoiceMulti:
		out.Choices = make([]WireChoice, 0, len(q.Choices))
		for _, choice := range q.Choices {
			out.Choices = append(out.Choices, WireChoice{Label: localize(choice)})
		}
		out.AllowMultipleSelection = q.Type == QuestionMultipleChoiceMulti

	case QuestionRating:
		out.Range = q.Range
		if out.Range == 0 {
			out.Range = 5
		}
		out.Scale = q.Scale
		if out.Scale == "" {
			out.Scale = "number"
		}
		out.LowerLabel = localize("Not likely")
		out.UpperLabel = localize("Very likely")

	case QuestionNPS:
		out.LowerLabel = localize("Not at all likely")
		out.UpperLabel = localize("Extremely likely")
	}

	return out
}
