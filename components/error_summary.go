package components

import (
	"fmt"
	"strings"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// ErrorSummaryDefinition describes govuk-error-summary.
var ErrorSummaryDefinition = &frontend.Definition{
	ModuleName: "govuk-error-summary",
	Defaults: frontend.MustObject(map[string]any{
		"disableAutoFocus": false,
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"disableAutoFocus": {Type: frontend.TypeBoolean},
		},
	},
}

// ErrorSummaryConstructor creates error summaries with frontend.CreateAll.
var ErrorSummaryConstructor = frontend.Constructor[*ErrorSummary]{
	Definition: ErrorSummaryDefinition,
	New:        NewErrorSummary,
}

// ErrorSummary takes focus on page load and moves focus to the field behind
// each error link.
type ErrorSummary struct {
	frontend.Base
}

// NewErrorSummary binds an error summary to root.
func NewErrorSummary(root *dom.Element, options frontend.Object) (*ErrorSummary, error) {
	base, err := frontend.Setup(ErrorSummaryDefinition, root, options)
	if err != nil {
		return nil, err
	}

	s := &ErrorSummary{Base: base}
	if !base.Config.Bool("disableAutoFocus") {
		frontend.SetFocus(root, frontend.FocusOptions{})
	}
	root.AddEventListener("click", s.handleClick)
	return s, nil
}

func (s *ErrorSummary) handleClick(ev *dom.Event) {
	if s.focusTarget(ev.Target) {
		ev.PreventDefault()
	}
}

// focusTarget scrolls the legend or label of the linked field into view and
// focuses the field. It reports whether the default navigation should be
// cancelled.
func (s *ErrorSummary) focusTarget(target *dom.Element) bool {
	if target == nil {
		return false
	}
	if target.TagName() != "a" {
		target = target.Closest("a")
		if target == nil || !s.Root.Contains(target) {
			return false
		}
	}

	inputID := strings.TrimPrefix(target.Hash(), "#")
	if inputID == "" {
		return false
	}
	input := s.Document.GetElementByID(inputID)
	if input == nil {
		return false
	}
	legendOrLabel := s.associatedLegendOrLabel(input)
	if legendOrLabel == nil {
		return false
	}

	legendOrLabel.ScrollIntoView()
	input.Focus()
	return true
}

// associatedLegendOrLabel prefers the fieldset legend for checkboxes and
// radios and the field label otherwise, falling back to the legend.
func (s *ErrorSummary) associatedLegendOrLabel(input *dom.Element) *dom.Element {
	var legend *dom.Element
	if fieldset := input.Closest("fieldset"); fieldset != nil {
		legend = fieldset.QuerySelector("legend")
		if legend != nil && (input.Type() == "checkbox" || input.Type() == "radio") {
			return legend
		}
	}

	if label := s.Document.QuerySelector(fmt.Sprintf(`label[for="%s"]`, input.ID())); label != nil {
		return label
	}
	if label := input.Closest("label"); label != nil {
		return label
	}
	return legend
}
