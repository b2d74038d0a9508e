// Package formbricks holds the document types shared by the generate and
// seed workflows, the transformer that maps them to the platform's wire
// format, and the HTTP client that talks to a Formbricks instance.
package formbricks

// Question type identifiers used in generated survey documents. They match
// the platform's own type names so the transformer can pass them through.
const (
	QuestionOpenText             = "openText"
	QuestionMultipleChoiceSingle = "multipleChoiceSingle"
	QuestionMultipleChoiceMulti  = "multipleChoiceMulti"
	QuestionRating               = "rating"
	QuestionNPS                  = "nps"
)

// Survey is the simplified survey document produced by generation and stored
// under data/generated/. It carries no identity; the platform assigns ids at
// creation time.
type Survey struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Questions    []Question    `json:"questions"`
	ThankYouCard *ThankYouCard `json:"thankYouCard,omitempty"`
}

// Question is one entry in a simplified survey. Required is a pointer so an
// absent field can default to true at transform time.
type Question struct {
	Type      string   `json:"type"`
	Headline  string   `json:"headline"`
	Subheader string   `json:"subheader,omitempty"`
	Required  *bool    `json:"required,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	Range     int      `json:"range,omitempty"`
	Scale     string   `json:"scale,omitempty"`
}

// ThankYouCard is the optional closing card of a simplified survey.
type ThankYouCard struct {
	Headline  string `json:"headline,omitempty"`
	Subheader string `json:"subheader,omitempty"`
}

// User is a generated platform user.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Response is a generated survey response. SurveyIndex refers to the
// position of the target survey in surveys.json, and Answers is keyed by
// "questionIndex_N" until seeding resolves real question ids. Completed is a
// pointer so an absent field can default to finished at submission time.
type Response struct {
	SurveyIndex int            `json:"surveyIndex"`
	Answers     map[string]any `json:"answers"`
	Completed   *bool          `json:"completed,omitempty"`
}
