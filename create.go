package frontend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-govuk-frontend/dom"
)

// Result carries either a constructed component or the construction error.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a constructed component.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a construction error.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// OK reports whether construction succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// Constructor pairs a component definition with its factory.
type Constructor[T any] struct {
	Definition *Definition
	New        func(root *dom.Element, options Object) (T, error)
}

// Create runs the factory and captures its outcome.
func (c Constructor[T]) Create(root *dom.Element, options Object) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = Fail[T](fmt.Errorf("%s: construction panicked: %v", moduleName(c.Definition), r))
		}
	}()
	v, err := c.New(root, options)
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// ErrorContext describes the failing construction passed to an ErrorHandler.
// Element is nil for support errors.
type ErrorContext struct {
	Element   *dom.Element
	Component string
	Config    Object
}

// ErrorHandler receives construction failures instead of the document logger.
type ErrorHandler func(err error, ctx ErrorContext)

type createOptions struct {
	scope   *dom.Element
	onError ErrorHandler
}

// CreateOption configures CreateAll.
type CreateOption func(*createOptions)

// WithScope limits discovery to the descendants of scope.
func WithScope(scope *dom.Element) CreateOption {
	return func(o *createOptions) {
		o.scope = scope
	}
}

// WithErrorHandler reports failures to handler.
func WithErrorHandler(handler ErrorHandler) CreateOption {
	return func(o *createOptions) {
		o.onError = handler
	}
}

// CreateAll constructs one component per element carrying the definition's
// data-module value. Failures are reported per element and never stop the
// remaining constructions. An unsupported page reports once and yields nil.
func CreateAll[T any](doc *dom.Document, ctor Constructor[T], options Object, opts ...CreateOption) []T {
	cfg := createOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	module := moduleName(ctor.Definition)
	report := func(err error, el *dom.Element) {
		if cfg.onError != nil {
			cfg.onError(err, ErrorContext{Element: el, Component: module, Config: options})
			return
		}
		doc.Logger().Warn("component initialisation failed",
			zap.String("component", module),
			zap.Error(err),
		)
	}

	selector := fmt.Sprintf(`[data-module="%s"]`, module)
	var elements []*dom.Element
	if cfg.scope != nil {
		elements = cfg.scope.QuerySelectorAll(selector)
	} else {
		elements = doc.QuerySelectorAll(selector)
	}

	if err := CheckSupport(doc); err != nil {
		report(err, nil)
		return nil
	}

	out := make([]T, 0, len(elements))
	for _, el := range elements {
		result := ctor.Create(el, options)
		if !result.OK() {
			report(result.Err, el)
			continue
		}
		out = append(out, result.Value)
	}
	return out
}
