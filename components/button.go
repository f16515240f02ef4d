package components

import (
	"time"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// debounceTimeout is how long repeat clicks are ignored when
// preventDoubleClick is enabled.
const debounceTimeout = time.Second

// ButtonDefinition describes govuk-button.
var ButtonDefinition = &frontend.Definition{
	ModuleName: "govuk-button",
	Defaults: frontend.MustObject(map[string]any{
		"preventDoubleClick": false,
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"preventDoubleClick": {Type: frontend.TypeBoolean},
		},
	},
}

// ButtonConstructor creates buttons with frontend.CreateAll.
var ButtonConstructor = frontend.Constructor[*Button]{
	Definition: ButtonDefinition,
	New:        NewButton,
}

// Button activates link buttons with the space key and optionally swallows
// double clicks.
type Button struct {
	frontend.Base

	debounceTimer int
}

// NewButton binds a button to root.
func NewButton(root *dom.Element, options frontend.Object) (*Button, error) {
	base, err := frontend.Setup(ButtonDefinition, root, options)
	if err != nil {
		return nil, err
	}

	b := &Button{Base: base}
	root.AddEventListener("keydown", b.handleKeyDown)
	root.AddEventListener("click", b.debounce)
	return b, nil
}

// handleKeyDown triggers a click on role="button" links when space is pressed.
func (b *Button) handleKeyDown(ev *dom.Event) {
	if ev.Key != " " {
		return
	}
	target := ev.Target
	if target != nil && target.GetAttribute("role") == "button" {
		ev.PreventDefault()
		target.Click()
	}
}

func (b *Button) debounce(ev *dom.Event) {
	if !b.Config.Bool("preventDoubleClick") {
		return
	}
	if b.debounceTimer != 0 {
		ev.PreventDefault()
		return
	}
	b.debounceTimer = b.Document.Clock().SetTimeout(debounceTimeout, func() {
		b.debounceTimer = 0
	})
}
