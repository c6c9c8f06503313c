// Package prompt asks the operator questions on the terminal.
package prompt

import (
	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter implements ports.Prompter on top of survey
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a prompter; opts are passed to every question
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// Input asks for a non-empty line of text
func (p *SurveyPrompter) Input(message string) (string, error) {
	var answer string
	q := &survey.Input{Message: message}
	if err := survey.AskOne(q, &answer, p.with(survey.WithValidator(survey.Required))...); err != nil {
		return "", err
	}
	return answer, nil
}

// MultiSelect asks for any number of options, returned in option order
func (p *SurveyPrompter) MultiSelect(message string, options []string) ([]string, error) {
	var answer []string
	q := &survey.MultiSelect{Message: message, Options: options}
	if err := survey.AskOne(q, &answer, p.with()...); err != nil {
		return nil, err
	}
	return answer, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	answer := defaultValue
	q := &survey.Confirm{Message: message, Default: defaultValue}
	if err := survey.AskOne(q, &answer, p.with()...); err != nil {
		return false, err
	}
	return answer, nil
}

func (p *SurveyPrompter) with(extra ...survey.AskOpt) []survey.AskOpt {
	opts := make([]survey.AskOpt, 0, len(p.opts)+len(extra))
	opts = append(opts, p.opts...)
	return append(opts, extra...)
}
