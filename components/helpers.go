package components

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	visuallyHiddenClass = "govuk-visually-hidden"

	tabletBreakpoint  = "40.0625em"
	desktopBreakpoint = "48.0625em"
)

func createElement(doc *dom.Document, tag string, classes ...string) *dom.Element {
	el := doc.CreateElement(tag)
	if len(classes) > 0 {
		el.AddClass(classes...)
	}
	return el
}

func createSpan(doc *dom.Document, text string, classes ...string) *dom.Element {
	span := createElement(doc, "span", classes...)
	span.SetTextContent(text)
	return span
}

func boolAttr(b bool) string {
	return strconv.FormatBool(b)
}

func writeSession(doc *dom.Document, key string, value bool) {
	if err := doc.SessionStorage().SetItem(key, boolAttr(value)); err != nil {
		doc.Logger().Warn("session storage write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// readSession returns the stored flag and whether one was stored.
func readSession(doc *dom.Document, key string) (bool, bool) {
	raw, ok := doc.SessionStorage().GetItem(key)
	if !ok {
		return false, false
	}
	return raw == "true", true
}
