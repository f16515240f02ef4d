package components

import (
	"fmt"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// CheckboxesDefinition describes govuk-checkboxes.
var CheckboxesDefinition = &frontend.Definition{ModuleName: "govuk-checkboxes"}

// CheckboxesConstructor creates checkboxes with frontend.CreateAll.
var CheckboxesConstructor = frontend.Constructor[*Checkboxes]{
	Definition: CheckboxesDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*Checkboxes, error) {
		return NewCheckboxes(root)
	},
}

// Checkboxes reveals conditional content for checked boxes and keeps
// "exclusive" options (such as "None of the above") mutually exclusive with
// the rest of the group.
type Checkboxes struct {
	frontend.Base

	inputs  []*dom.Element
	reveals conditionalReveals
}

// NewCheckboxes binds checkboxes to root.
func NewCheckboxes(root *dom.Element) (*Checkboxes, error) {
	base, err := frontend.Setup(CheckboxesDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	inputs := root.QuerySelectorAll(`input[type="checkbox"]`)
	if len(inputs) == 0 {
		return nil, base.ElementError("Form inputs (`<input type=\"checkbox\">`)")
	}

	c := &Checkboxes{
		Base:    base,
		inputs:  inputs,
		reveals: conditionalReveals{doc: base.Document, prefix: "govuk-checkboxes"},
	}
	if missing, ok := c.reveals.bind(inputs); !ok {
		return nil, base.ElementError(fmt.Sprintf("Conditional reveal (`id=\"%s\"`)", missing))
	}

	c.Document.AddWindowListener("pageshow", func(*dom.Event) {
		c.reveals.syncAll(c.inputs)
	})
	c.reveals.syncAll(c.inputs)

	root.AddEventListener("click", c.handleClick)
	return c, nil
}

func (c *Checkboxes) handleClick(ev *dom.Event) {
	target := ev.Target
	if !isInputOfType(target, "checkbox") {
		return
	}

	if target.HasAttribute("aria-controls") {
		c.reveals.sync(target)
	}
	if !target.Checked() {
		return
	}

	if target.GetAttribute("data-behaviour") == "exclusive" {
		c.uncheckAllInputsExcept(target)
	} else {
		c.uncheckExclusiveInputs(target)
	}
}

func (c *Checkboxes) uncheckAllInputsExcept(input *dom.Element) {
	selector := fmt.Sprintf(`input[type="checkbox"][name="%s"]`, input.GetAttribute("name"))
	c.uncheck(input, c.Document.QuerySelectorAll(selector))
}

func (c *Checkboxes) uncheckExclusiveInputs(input *dom.Element) {
	selector := fmt.Sprintf(`input[data-behaviour="exclusive"][type="checkbox"][name="%s"]`, input.GetAttribute("name"))
	c.uncheck(input, c.Document.QuerySelectorAll(selector))
}

func (c *Checkboxes) uncheck(input *dom.Element, candidates []*dom.Element) {
	form := input.Form()
	for _, candidate := range candidates {
		if candidate == input || candidate.Form() != form {
			continue
		}
		candidate.SetChecked(false)
		c.reveals.sync(candidate)
	}
}
