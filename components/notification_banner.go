package components

import (
	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// NotificationBannerDefinition describes govuk-notification-banner.
var NotificationBannerDefinition = &frontend.Definition{
	ModuleName: "govuk-notification-banner",
	Defaults: frontend.MustObject(map[string]any{
		"disableAutoFocus": false,
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"disableAutoFocus": {Type: frontend.TypeBoolean},
		},
	},
}

// NotificationBannerConstructor creates banners with frontend.CreateAll.
var NotificationBannerConstructor = frontend.Constructor[*NotificationBanner]{
	Definition: NotificationBannerDefinition,
	New:        NewNotificationBanner,
}

// NotificationBanner focuses success banners (role="alert") on page load.
type NotificationBanner struct {
	frontend.Base
}

// NewNotificationBanner binds a notification banner to root.
func NewNotificationBanner(root *dom.Element, options frontend.Object) (*NotificationBanner, error) {
	base, err := frontend.Setup(NotificationBannerDefinition, root, options)
	if err != nil {
		return nil, err
	}

	if root.GetAttribute("role") == "alert" && !base.Config.Bool("disableAutoFocus") {
		frontend.SetFocus(root, frontend.FocusOptions{})
	}
	return &NotificationBanner{Base: base}, nil
}
