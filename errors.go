package frontend

import (
	"errors"
	"fmt"
)

// Error kinds raised while constructing a component. Match them with errors.Is.
var (
	ErrSupport = errors.New("frontend: support error")
	ErrElement = errors.New("frontend: element error")
	ErrConfig  = errors.New("frontend: config error")
	ErrInit    = errors.New("frontend: init error")
)

// ErrTranslation wraps runtime failures of the I18n engine. Wrapped messages
// read "i18n: <reason>".
var ErrTranslation = errors.New("i18n")

// ErrNoCatalogPaths is returned by a FileLoader without input files.
var ErrNoCatalogPaths = errors.New("i18n: no loader paths configured")

const supportMessage = "GOV.UK Frontend initialised without `<body class=\"govuk-frontend-supported\">` from template `<script>` snippet"

// ComponentError is a typed construction failure.
type ComponentError struct {
	Kind    error
	Module  string
	Message string
}

func (e *ComponentError) Error() string {
	if e.Module == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Module, e.Message)
}

// Unwrap exposes the error kind.
func (e *ComponentError) Unwrap() error {
	return e.Kind
}

// SupportError reports a page without the supported marker.
func SupportError() *ComponentError {
	return &ComponentError{Kind: ErrSupport, Message: supportMessage}
}

// ElementError reports a missing or mistyped element. Identifier is the
// human readable description of the element, for example "Root element (`$root`)".
func ElementError(module, identifier string, expectedType ...ElementType) *ComponentError {
	msg := identifier + " not found"
	if len(expectedType) > 0 && expectedType[0] != "" {
		msg = fmt.Sprintf("%s is not of type %s", identifier, expectedType[0])
	}
	return &ComponentError{Kind: ErrElement, Module: module, Message: msg}
}

// ElementErrorf reports an element problem that does not fit the
// "not found" or "is not of type" forms.
func ElementErrorf(module, format string, args ...any) *ComponentError {
	return &ComponentError{Kind: ErrElement, Module: module, Message: fmt.Sprintf(format, args...)}
}

// ConfigError reports invalid or missing configuration.
func ConfigError(module, message string) *ComponentError {
	return &ComponentError{Kind: ErrConfig, Module: module, Message: message}
}

// InitError reports a root element that was already initialised.
func InitError(module string) *ComponentError {
	return &ComponentError{
		Kind:    ErrInit,
		Module:  module,
		Message: "Root element (`$root`) already initialised",
	}
}

func IsSupportError(err error) bool { return errors.Is(err, ErrSupport) }

func IsElementError(err error) bool { return errors.Is(err, ErrElement) }

func IsConfigError(err error) bool { return errors.Is(err, ErrConfig) }

func IsInitError(err error) bool { return errors.Is(err, ErrInit) }

func translationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTranslation, fmt.Sprintf(format, args...))
}
