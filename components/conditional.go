package components

import (
	"github.com/goliatone/go-govuk-frontend/dom"
)

// conditionalReveals wires data-aria-controls on checkbox and radio inputs to
// the conditional content they show. prefix is the BEM block, for example
// "govuk-checkboxes".
type conditionalReveals struct {
	doc    *dom.Document
	prefix string
}

func (c conditionalReveals) conditionalClass() string {
	return c.prefix + "__conditional"
}

func (c conditionalReveals) hiddenClass() string {
	return c.prefix + "__conditional--hidden"
}

// bind moves data-aria-controls to aria-controls once the target exists. It
// returns the id of the first missing target.
func (c conditionalReveals) bind(inputs []*dom.Element) (string, bool) {
	for _, input := range inputs {
		target := input.GetAttribute("data-aria-controls")
		if target == "" {
			continue
		}
		if c.doc.GetElementByID(target) == nil {
			return target, false
		}
		input.SetAttribute("aria-controls", target)
		input.RemoveAttribute("data-aria-controls")
	}
	return "", true
}

func (c conditionalReveals) sync(input *dom.Element) {
	target := c.doc.GetElementByID(input.GetAttribute("aria-controls"))
	if target == nil || !target.HasClass(c.conditionalClass()) {
		return
	}
	checked := input.Checked()
	input.SetAttribute("aria-expanded", boolAttr(checked))
	target.ToggleClass(c.hiddenClass(), !checked)
}

func (c conditionalReveals) syncAll(inputs []*dom.Element) {
	for _, input := range inputs {
		c.sync(input)
	}
}

func isInputOfType(el *dom.Element, kind string) bool {
	return el != nil && el.TagName() == "input" && el.Type() == kind
}
