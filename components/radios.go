package components

import (
	"fmt"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// RadiosDefinition describes govuk-radios.
var RadiosDefinition = &frontend.Definition{ModuleName: "govuk-radios"}

// RadiosConstructor creates radios with frontend.CreateAll.
var RadiosConstructor = frontend.Constructor[*Radios]{
	Definition: RadiosDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*Radios, error) {
		return NewRadios(root)
	},
}

// Radios reveals conditional content for the selected radio. Selecting a
// radio hides the content of every other radio in the same group, including
// radios rendered by other components in the same form.
type Radios struct {
	frontend.Base

	inputs  []*dom.Element
	reveals conditionalReveals
}

// NewRadios binds radios to root.
func NewRadios(root *dom.Element) (*Radios, error) {
	base, err := frontend.Setup(RadiosDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	inputs := root.QuerySelectorAll(`input[type="radio"]`)
	if len(inputs) == 0 {
		return nil, base.ElementError("Form inputs (`<input type=\"radio\">`)")
	}

	r := &Radios{
		Base:    base,
		inputs:  inputs,
		reveals: conditionalReveals{doc: base.Document, prefix: "govuk-radios"},
	}
	if missing, ok := r.reveals.bind(inputs); !ok {
		return nil, base.ElementError(fmt.Sprintf("Conditional reveal (`id=\"%s\"`)", missing))
	}

	r.Document.AddWindowListener("pageshow", func(*dom.Event) {
		r.reveals.syncAll(r.inputs)
	})
	r.reveals.syncAll(r.inputs)

	root.AddEventListener("click", r.handleClick)
	return r, nil
}

func (r *Radios) handleClick(ev *dom.Event) {
	target := ev.Target
	if !isInputOfType(target, "radio") {
		return
	}

	form := target.Form()
	name := target.GetAttribute("name")
	for _, input := range r.Document.QuerySelectorAll(`input[type="radio"][aria-controls]`) {
		if input.GetAttribute("name") == name && input.Form() == form {
			r.reveals.sync(input)
		}
	}
}
