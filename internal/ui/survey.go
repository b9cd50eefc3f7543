package ui

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
)

// IconOption returns a survey option that sets the question icon to "-"
// This provides a consistent UI style across all interactive prompts.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// SurveyConfirmer asks yes/no questions on the terminal.
type SurveyConfirmer struct {
	Default bool
}

func (c SurveyConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	confirmed := c.Default
	prompt := &survey.Confirm{
		Message: message,
		Default: c.Default,
	}
	if err := survey.AskOne(prompt, &confirmed, IconOption()); err != nil {
		return false, err
	}
	return confirmed, nil
}

// AutoConfirmer answers every question without prompting, for --yes.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	return true, nil
}
