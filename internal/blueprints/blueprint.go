package blueprints

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Blueprint describes poll templates with their question graphs.
type Blueprint struct {
	Templates []Template `yaml:"templates" validate:"required,min=1,dive"`
}

type Template struct {
	Title         string     `yaml:"title" validate:"required"`
	Message       string     `yaml:"message" validate:"required"`
	DaysAfterHire int        `yaml:"days_after_hire" validate:"gte=0"`
	TimeOfDay     string     `yaml:"time_of_day" validate:"oneof=morning evening"`
	IntendedFor   string     `yaml:"intended_for" validate:"oneof=employee curator"`
	PollType      string     `yaml:"poll_type" validate:"oneof=onboarding offboarding feedback intermediate_feedback"`
	PollNumber    int        `yaml:"poll_number" validate:"gte=1"`
	Questions     []Question `yaml:"questions" validate:"required,min=1,dive"`
}

// Question is asked in the order it is listed, the first one opens the poll.
type Question struct {
	Key      string `yaml:"key" validate:"required"`
	Text     string `yaml:"text" validate:"required"`
	Type     string `yaml:"type" validate:"oneof=yes_no finish message next numbers slots"`
	Category string `yaml:"category"`
	Show     bool   `yaml:"show"`
	Next     []Edge `yaml:"next" validate:"dive"`
}

type Edge struct {
	On string `yaml:"on" validate:"required"`
	To string `yaml:"to" validate:"required"`
}

var validate = validator.New()

func Parse(data []byte) (*Blueprint, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("blueprint is empty")
	}

	blueprint := &Blueprint{}
	if err := yaml.Unmarshal(data, blueprint); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint: %w", err)
	}

	if err := Validate(blueprint); err != nil {
		return nil, err
	}

	return blueprint, nil
}

func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint %s: %w", path, err)
	}

	blueprint, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blueprint, nil
}

// Validate checks field values and that every template is a well formed question graph.
func Validate(blueprint *Blueprint) error {
	if err := validate.Struct(blueprint); err != nil {
		return fmt.Errorf("invalid blueprint: %w", err)
	}

	type sequenceKey struct {
		pollType    string
		intendedFor string
		number      int
	}
	sequence := make(map[sequenceKey]string)

	for _, template := range blueprint.Templates {
		key := sequenceKey{template.PollType, template.IntendedFor, template.PollNumber}
		if other, ok := sequence[key]; ok {
			return fmt.Errorf("templates %q and %q share poll number %d", other, template.Title, template.PollNumber)
		}
		sequence[key] = template.Title

		if err := validateGraph(template); err != nil {
			return fmt.Errorf("template %q: %w", template.Title, err)
		}
	}

	return nil
}

func validateGraph(template Template) error {
	questions := make(map[string]Question, len(template.Questions))
	hasFinish := false

	for _, question := range template.Questions {
		if _, ok := questions[question.Key]; ok {
			return fmt.Errorf("duplicate question key %q", question.Key)
		}
		questions[question.Key] = question

		if models.QuestionType(question.Type) == models.QuestionTypeFinish {
			hasFinish = true
		}
	}
	if !hasFinish {
		return errors.New("no finish question")
	}

	for _, question := range template.Questions {
		seen := make(map[string]bool, len(question.Next))
		for _, edge := range question.Next {
			if _, ok := questions[edge.To]; !ok {
				return fmt.Errorf("question %q leads to unknown question %q", question.Key, edge.To)
			}
			if edge.To == question.Key {
				return fmt.Errorf("question %q leads to itself", question.Key)
			}
			if !tokenFits(models.QuestionType(question.Type), models.AnswerToken(edge.On)) {
				return fmt.Errorf("question %q of type %s cannot branch on %q", question.Key, question.Type, edge.On)
			}
			if seen[edge.On] {
				return fmt.Errorf("question %q branches twice on %q", question.Key, edge.On)
			}
			seen[edge.On] = true
		}
	}

	return nil
}

func tokenFits(questionType models.QuestionType, token models.AnswerToken) bool {
	switch questionType {
	case models.QuestionTypeYesNo:
		return token == models.AnswerTokenYes || token == models.AnswerTokenNo
	case models.QuestionTypeNumbers:
		switch token {
		case models.AnswerTokenOne, models.AnswerTokenTwo, models.AnswerTokenThree, models.AnswerTokenFour, models.AnswerTokenFive:
			return true
		}
	case models.QuestionTypeNext:
		return token == models.AnswerTokenNext
	case models.QuestionTypeMessage, models.QuestionTypeSlots:
		return token == models.AnswerTokenSomeText
	}
	return false
}
