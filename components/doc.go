// Package components implements the GOV.UK Frontend widgets on top of the
// dom package.
//
// Every widget exposes a Definition (module name, defaults and schema), a
// New function that binds the widget to a root element and a Constructor
// pairing the two for frontend.CreateAll. InitAll creates every widget found
// in a document.
//
//	doc, _ := dom.ParseString(page)
//	instances := components.InitAll(doc, components.InitConfig{
//		Accordion: frontend.Object{"rememberExpanded": frontend.Bool(false)},
//	})
//
// Widgets react to events dispatched on the document: clicks, key presses,
// focus changes, window pageshow and hashchange events, media query changes
// and timers advanced through the document clock.
package components
