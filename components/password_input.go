package components

import (
	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// PasswordInputDefinition describes govuk-password-input.
var PasswordInputDefinition = &frontend.Definition{
	ModuleName: "govuk-password-input",
	Defaults: frontend.MustObject(map[string]any{
		"i18n": map[string]any{
			"showPassword":               "Show",
			"hidePassword":               "Hide",
			"showPasswordAriaLabel":      "Show password",
			"hidePasswordAriaLabel":      "Hide password",
			"passwordShownAnnouncement":  "Your password is visible",
			"passwordHiddenAnnouncement": "Your password is hidden",
		},
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"i18n": {Type: frontend.TypeObject},
		},
	},
}

// PasswordInputConstructor creates password inputs with frontend.CreateAll.
var PasswordInputConstructor = frontend.Constructor[*PasswordInput]{
	Definition: PasswordInputDefinition,
	New:        NewPasswordInput,
}

// PasswordInput toggles the visibility of a password field. The password is
// hidden again when its form is submitted or the page is restored.
type PasswordInput struct {
	frontend.Base

	i18n   *frontend.I18n
	input  *dom.Element
	toggle *dom.Element
	status *dom.Element
}

// NewPasswordInput binds a password input to root.
func NewPasswordInput(root *dom.Element, options frontend.Object) (*PasswordInput, error) {
	base, err := frontend.Setup(PasswordInputDefinition, root, options)
	if err != nil {
		return nil, err
	}

	const inputID = "Form field (`.govuk-js-password-input-input`)"
	input := root.QuerySelector(".govuk-js-password-input-input")
	if input == nil {
		return nil, base.ElementError(inputID)
	}
	if !frontend.HTMLInputElement.Matches(input) {
		return nil, base.ElementError(inputID, frontend.HTMLInputElement)
	}
	if input.Type() != "password" {
		return nil, frontend.ElementErrorf(base.Module, "%s must be of type `password`.", inputID)
	}

	const buttonID = "Button (`.govuk-js-password-input-toggle`)"
	toggle := root.QuerySelector(".govuk-js-password-input-toggle")
	if toggle == nil {
		return nil, base.ElementError(buttonID)
	}
	if !frontend.HTMLButtonElement.Matches(toggle) {
		return nil, base.ElementError(buttonID, frontend.HTMLButtonElement)
	}
	if toggle.Type() != "button" {
		return nil, frontend.ElementErrorf(base.Module, "%s must be of type `button`.", buttonID)
	}

	p := &PasswordInput{Base: base, i18n: base.I18n(), input: input, toggle: toggle}

	toggle.RemoveAttribute("hidden")
	p.status = createElement(p.Document, "div", "govuk-password-input__sr-status", visuallyHiddenClass)
	p.status.SetAttribute("aria-live", "polite")
	input.After(p.status)

	toggle.AddEventListener("click", p.handleToggle)
	if form := input.Form(); form != nil {
		form.AddEventListener("submit", func(*dom.Event) {
			p.Hide()
		})
	}
	p.Document.AddWindowListener("pageshow", func(*dom.Event) {
		if p.input.Type() != "password" {
			p.Hide()
		}
	})

	p.Hide()
	return p, nil
}

func (p *PasswordInput) handleToggle(ev *dom.Event) {
	ev.PreventDefault()
	if p.input.Type() == "password" {
		p.Show()
		return
	}
	p.Hide()
}

// Show reveals the password.
func (p *PasswordInput) Show() {
	p.setType("text")
}

// Hide masks the password.
func (p *PasswordInput) Hide() {
	p.setType("password")
}

func (p *PasswordInput) setType(kind string) {
	if kind == p.input.Type() {
		return
	}
	p.input.SetAttribute("type", kind)

	buttonPrefix, statusPrefix := "hide", "passwordShown"
	if kind == "password" {
		buttonPrefix, statusPrefix = "show", "passwordHidden"
	}

	p.toggle.SetTextContent(p.i18n.MustT(buttonPrefix+"Password", nil))
	p.toggle.SetAttribute("aria-label", p.i18n.MustT(buttonPrefix+"PasswordAriaLabel", nil))
	p.status.SetTextContent(p.i18n.MustT(statusPrefix+"Announcement", nil))
}
