package components

import (
	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// ServiceNavigationDefinition describes govuk-service-navigation.
var ServiceNavigationDefinition = &frontend.Definition{ModuleName: "govuk-service-navigation"}

// ServiceNavigationConstructor creates service navigations with frontend.CreateAll.
var ServiceNavigationConstructor = frontend.Constructor[*ServiceNavigation]{
	Definition: ServiceNavigationDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*ServiceNavigation, error) {
		return NewServiceNavigation(root)
	},
}

// ServiceNavigation collapses service links behind a menu button below the
// tablet breakpoint.
type ServiceNavigation struct {
	frontend.Base

	toggle *menuToggle
}

// NewServiceNavigation binds a service navigation to root.
func NewServiceNavigation(root *dom.Element) (*ServiceNavigation, error) {
	base, err := frontend.Setup(ServiceNavigationDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	toggle, err := newMenuToggle(base, ".govuk-js-service-navigation-toggle",
		"Navigation button (`<button class=\"govuk-js-service-navigation-toggle\">`)", tabletBreakpoint)
	if err != nil {
		return nil, err
	}
	return &ServiceNavigation{Base: base, toggle: toggle}, nil
}

// MenuOpen reports whether the mobile menu is open.
func (s *ServiceNavigation) MenuOpen() bool {
	return s.toggle != nil && s.toggle.open
}
