package output

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned when a prompt is needed but stdin or
// stdout is not a terminal, or ST_NON_INTERACTIVE is set
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled")

// ErrPromptCanceled is returned when the user interrupts a prompt
var ErrPromptCanceled = errors.New("canceled")

// IsInteractive reports whether prompts can be shown
func IsInteractive() bool {
	if os.Getenv("ST_NON_INTERACTIVE") != "" {
		return false
	}
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// Prompter asks the user questions
type Prompter interface {
	Select(message string, options []string, defaultOption string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter prompts on the terminal
type SurveyPrompter struct{}

// Select asks the user to pick one of options
func (SurveyPrompter) Select(message string, options []string, defaultOption string) (string, error) {
	if !IsInteractive() {
		return "", ErrInteractiveDisabled
	}
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultOption != "" {
		prompt.Default = defaultOption
	}
	var answer string
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", surveyError(err)
	}
	return answer, nil
}

// Confirm asks a yes/no question
func (SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if !IsInteractive() {
		return false, ErrInteractiveDisabled
	}
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	var answer bool
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, surveyError(err)
	}
	return answer, nil
}

func surveyError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrPromptCanceled
	}
	return err
}
