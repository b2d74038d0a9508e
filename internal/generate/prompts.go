package generate

import (
	"fmt"
	"strings"

	"brickseed/internal/formbricks"
)

// Prompt templates are the contract with the model: each one pins the exact
// JSON shape the parser expects and forbids markdown wrapping. The fence
// stripper catches models that wrap anyway.

const surveysPromptTemplate = `Generate %d diverse survey structures in JSON format. Requirements:

- Each survey should have a unique, professional name and description
- Include 3-5 questions per survey with various types
- Question types: openText, multipleChoiceSingle, multipleChoiceMulti, rating, nps
- Cover different use cases: customer feedback, employee satisfaction, product research, event feedback, user onboarding
- Use realistic question text and answer options
- Include a thank you screen for each survey

Return only a JSON array with this exact structure:
[
  {
    "name": "Survey Name",
    "description": "Survey description",
    "questions": [
      {
        "type": "openText|multipleChoiceSingle|multipleChoiceMulti|rating|nps",
        "headline": "Question text",
        "subheader": "Optional subheader",
        "required": true,
        "choices": ["Option 1", "Option 2"],
        "range": 5,
        "scale": "number"
      }
    ],
    "thankYouCard": {
      "headline": "Thank you message",
      "subheader": "Additional message"
    }
  }
]

Return only the JSON array without any markdown formatting or additional text.`

const usersPromptTemplate = `Generate %d user profiles in JSON format. Requirements:

- Use realistic, diverse full names
- Create professional email addresses
- Assign roles: %d users as "owner", %d users as "member"

Return only a JSON array with this exact structure:
[
  {
    "name": "Full Name",
    "email": "email@domain.com",
    "role": "owner"
  }
]

Use realistic names and email addresses. Return only the JSON array without any markdown formatting.`

const responsesPromptTemplate = `Generate 1 realistic survey response for this survey:

Survey: %s

Questions:
%s

Return a JSON array with 1 response object:
[
  {
    "surveyIndex": %d,
    "answers": {
      "questionIndex_0": "answer value"
    },
    "completed": true
  }
]

Answer format:
- openText: string
- multipleChoiceSingle: string
- multipleChoiceMulti: array of strings
- rating: number
- nps: number (0-10)

Provide realistic, natural answers. Return only the JSON array without markdown formatting.`

func buildSurveysPrompt(count int) string {
	return fmt.Sprintf(surveysPromptTemplate, count)
}

func buildUsersPrompt(count int) string {
	owners := count / 2
	return fmt.Sprintf(usersPromptTemplate, count, owners, count-owners)
}

func buildResponsesPrompt(surveyIndex int, survey formbricks.Survey) string {
	return fmt.Sprintf(responsesPromptTemplate, survey.Name, describeQuestions(survey.Questions), surveyIndex)
}

// describeQuestions renders a survey's questions as one line each so the
// model knows what kind of answer every index expects.
func describeQuestions(questions []formbricks.Question) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		switch q.Type {
		case formbricks.QuestionMultipleChoiceSingle, formbricks.QuestionMultipleChoiceMulti:
			lines = append(lines, fmt.Sprintf("%s (Type: %s, Choices: %s)", q.Headline, q.Type, strings.Join(q.Choices, ", ")))
		case formbricks.QuestionRating:
			upper := q.Range
			if upper == 0 {
				upper = 5
			}
			lines = append(lines, fmt.Sprintf("%s (Type: rating, Range: 1-%d)", q.Headline, upper))
		case formbricks.QuestionNPS:
			lines = append(lines, fmt.Sprintf("%s (Type: NPS, Range: 0-10)", q.Headline))
		default:
			lines = append(lines, fmt.Sprintf("%s (Type: %s)", q.Headline, q.Type))
		}
	}
	return strings.Join(lines, "\n")
}
