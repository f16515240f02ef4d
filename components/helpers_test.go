package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-govuk-frontend/dom"
)

func page(body string) string {
	return `<!DOCTYPE html>
<html lang="en">
<body class="govuk-template__body govuk-frontend-supported">
` + body + `
</body>
</html>`
}

func parseDoc(t *testing.T, body string, opts ...dom.Option) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page(body), opts...)
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()
	el := doc.GetElementByID(id)
	require.NotNil(t, el, "missing #%s", id)
	return el
}
