package testhelpers

import (
	"fmt"

	"stackit.dev/st/internal/output"
)

// FakePrompter answers prompts from scripted responses and records the
// questions it was asked
type FakePrompter struct {
	// Selections are returned by Select in order
	Selections []string
	// Confirmations are returned by Confirm in order
	Confirmations []bool
	// Err, when set, is returned by every prompt
	Err error

	Asked   []string
	Options [][]string
}

var _ output.Prompter = (*FakePrompter)(nil)

// Select returns the next scripted selection, which must be one of options
func (p *FakePrompter) Select(message string, options []string, _ string) (string, error) {
	p.Asked = append(p.Asked, message)
	p.Options = append(p.Options, options)
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.Selections) == 0 {
		return "", output.ErrInteractiveDisabled
	}
	answer := p.Selections[0]
	p.Selections = p.Selections[1:]
	for _, option := range options {
		if option == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not one of %v", answer, options)
}

// Confirm returns the next scripted confirmation
func (p *FakePrompter) Confirm(message string, _ bool) (bool, error) {
	p.Asked = append(p.Asked, message)
	if p.Err != nil {
		return false, p.Err
	}
	if len(p.Confirmations) == 0 {
		return false, output.ErrInteractiveDisabled
	}
	answer := p.Confirmations[0]
	p.Confirmations = p.Confirmations[1:]
	return answer, nil
}
