package components

import (
	"time"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	exitThisPageKeypressGuard   = "govuk-exit-this-page-keypress"
	exitThisPageHideContent     = "govuk-exit-this-page-hide-content"
	exitThisPageIndicator       = "govuk-exit-this-page__indicator"
	exitThisPageIndicatorOn     = "govuk-exit-this-page__indicator--visible"
	exitThisPageIndicatorLight  = "govuk-exit-this-page__indicator-light"
	exitThisPageLightOn         = "govuk-exit-this-page__indicator-light--on"
	exitThisPagePresses         = 3
	exitThisPageTimeout         = 5 * time.Second
	exitThisPageMessageDuration = 5 * time.Second
)

// ExitThisPageDefinition describes govuk-exit-this-page.
var ExitThisPageDefinition = &frontend.Definition{
	ModuleName: "govuk-exit-this-page",
	Defaults: frontend.MustObject(map[string]any{
		"i18n": map[string]any{
			"activated":         "Loading.",
			"timedOut":          "Exit this page expired.",
			"pressTwoMoreTimes": "Shift, press 2 more times to exit.",
			"pressOneMoreTime":  "Shift, press 1 more time to exit.",
		},
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"i18n": {Type: frontend.TypeObject},
		},
	},
}

// ExitThisPageConstructor creates exit this page buttons with frontend.CreateAll.
var ExitThisPageConstructor = frontend.Constructor[*ExitThisPage]{
	Definition: ExitThisPageDefinition,
	New:        NewExitThisPage,
}

// ExitThisPage hides the page and navigates away when its button or a skip
// link is activated, or when Shift is pressed three times within five seconds.
type ExitThisPage struct {
	frontend.Base

	i18n       *frontend.I18n
	button     *dom.Element
	indicator  *dom.Element
	updateSpan *dom.Element
	overlay    *dom.Element

	keypressCounter   int
	lastKeyWasShifted bool
	keypressTimer     int
	messageTimer      int
}

// NewExitThisPage binds an exit this page button to root.
func NewExitThisPage(root *dom.Element, options frontend.Object) (*ExitThisPage, error) {
	base, err := frontend.Setup(ExitThisPageDefinition, root, options)
	if err != nil {
		return nil, err
	}

	const buttonID = "Button (`.govuk-exit-this-page__button`)"
	button := root.QuerySelector(".govuk-exit-this-page__button")
	if button == nil {
		return nil, base.ElementError(buttonID)
	}
	if !frontend.HTMLAnchorElement.Matches(button) {
		return nil, base.ElementError(buttonID, frontend.HTMLAnchorElement)
	}

	e := &ExitThisPage{Base: base, i18n: base.I18n(), button: button}
	e.buildIndicator()
	e.initUpdateSpan()
	e.initButtonClickHandler()

	// The document wide keyup listener belongs to the first instance only.
	e.Document.RegisterOnce(exitThisPageKeypressGuard, func() {
		e.Document.AddEventListener("keyup", e.handleKeypress)
	})
	e.Document.AddWindowListener("pageshow", func(*dom.Event) {
		e.resetPage()
	})
	return e, nil
}

func (e *ExitThisPage) initUpdateSpan() {
	e.updateSpan = createElement(e.Document, "span", visuallyHiddenClass)
	e.updateSpan.SetAttribute("role", "status")
	e.Root.AppendChild(e.updateSpan)
}

func (e *ExitThisPage) initButtonClickHandler() {
	e.button.AddEventListener("click", e.handleClick)
	for _, link := range e.Document.QuerySelectorAll(".govuk-js-exit-this-page-skiplink") {
		link.AddEventListener("click", e.handleClick)
	}
}

func (e *ExitThisPage) buildIndicator() {
	e.indicator = createElement(e.Document, "div", exitThisPageIndicator)
	for i := 0; i < exitThisPagePresses; i++ {
		e.indicator.AppendChild(createElement(e.Document, "div", exitThisPageIndicatorLight))
	}
	e.button.AppendChild(e.indicator)
}

func (e *ExitThisPage) updateIndicator() {
	e.indicator.ToggleClass(exitThisPageIndicatorOn, e.keypressCounter > 0)
	for i, light := range e.indicator.QuerySelectorAll("." + exitThisPageIndicatorLight) {
		light.ToggleClass(exitThisPageLightOn, i < e.keypressCounter)
	}
}

// exitPage hides the page behind an overlay and follows the button link.
func (e *ExitThisPage) exitPage() {
	body := e.Document.Body()
	e.updateSpan.SetTextContent("")
	body.AddClass(exitThisPageHideContent)

	e.overlay = createElement(e.Document, "div", "govuk-exit-this-page-overlay")
	e.overlay.SetAttribute("role", "alert")
	body.AppendChild(e.overlay)
	e.overlay.SetTextContent(e.i18n.MustT("activated", nil))

	e.Document.Navigate(e.button.Href())
}

func (e *ExitThisPage) handleClick(ev *dom.Event) {
	ev.PreventDefault()
	e.exitPage()
}

func (e *ExitThisPage) handleKeypress(ev *dom.Event) {
	clock := e.Document.Clock()

	switch {
	case ev.Key == "Shift" && !e.lastKeyWasShifted:
		e.keypressCounter++
		e.updateIndicator()

		if e.messageTimer != 0 {
			clock.Clear(e.messageTimer)
			e.messageTimer = 0
		}

		switch {
		case e.keypressCounter >= exitThisPagePresses:
			e.keypressCounter = 0
			if e.keypressTimer != 0 {
				clock.Clear(e.keypressTimer)
				e.keypressTimer = 0
			}
			e.exitPage()
		case e.keypressCounter == 1:
			e.updateSpan.SetTextContent(e.i18n.MustT("pressTwoMoreTimes", nil))
		default:
			e.updateSpan.SetTextContent(e.i18n.MustT("pressOneMoreTime", nil))
		}

		e.setKeypressTimer()
	case e.keypressTimer != 0:
		e.resetKeypressTimer()
	}

	e.lastKeyWasShifted = ev.ShiftKey
}

func (e *ExitThisPage) setKeypressTimer() {
	clock := e.Document.Clock()
	clock.Clear(e.keypressTimer)
	e.keypressTimer = clock.SetTimeout(exitThisPageTimeout, e.resetKeypressTimer)
}

// resetKeypressTimer forgets the Shift presses and announces the expiry.
func (e *ExitThisPage) resetKeypressTimer() {
	clock := e.Document.Clock()
	clock.Clear(e.keypressTimer)
	e.keypressTimer = 0
	e.keypressCounter = 0
	e.updateSpan.SetTextContent(e.i18n.MustT("timedOut", nil))

	e.messageTimer = clock.SetTimeout(exitThisPageMessageDuration, func() {
		e.updateSpan.SetTextContent("")
		e.messageTimer = 0
	})
	e.updateIndicator()
}

// resetPage undoes exitPage when the page is restored from the back/forward
// cache.
func (e *ExitThisPage) resetPage() {
	clock := e.Document.Clock()

	e.Document.Body().RemoveClass(exitThisPageHideContent)
	if e.overlay != nil {
		e.overlay.Remove()
		e.overlay = nil
	}

	e.updateSpan.SetAttribute("role", "status")
	e.updateSpan.SetTextContent("")
	e.updateIndicator()

	if e.keypressTimer != 0 {
		clock.Clear(e.keypressTimer)
		e.keypressTimer = 0
	}
	if e.messageTimer != 0 {
		clock.Clear(e.messageTimer)
		e.messageTimer = 0
	}
}
