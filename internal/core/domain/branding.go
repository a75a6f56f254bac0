package domain

// Branding holds viewer customisation settings.
// Stored in the config file and applied to the TUI theme.
type Branding struct {
	// AccentColour is a hex colour (e.g. "#7C3AED") for highlights.
	AccentColour string

	// LogoText is shown in the viewer title bar instead of "folio".
	LogoText string

	// ShowTitleBar controls whether the viewer renders the title bar.
	ShowTitleBar bool
}

// DefaultBranding returns the stock branding.
func DefaultBranding() Branding {
	return Branding{
		AccentColour: "#7C3AED",
		LogoText:     "folio",
		ShowTitleBar: true,
	}
}
