package theme

// registerBuiltins registers all built-in themes in the registry.
func registerBuiltins() {
	for _, t := range []Theme{
		defaultTheme(),
		lightTheme(),
		highContrastTheme(),
	} {
		register(t)
	}
}

// defaultTheme returns the dark theme with amber accent.
func defaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#0d1117",
		Foreground: "#c9d1d9",
		Dim:        "#6e7681",
		Accent:     "#F59E0B",

		Border:      "#30363d",
		BorderFocus: "#F59E0B",
		Title:       "#c9d1d9",

		PriceUp:   "#3fb950",
		PriceDown: "#f85149",
		PriceFlat: "#8b949e",

		ChartLine: "#58a6ff",
		ChartGrid: "#21262d",

		StatusOK:    "#3fb950",
		StatusWarn:  "#d29922",
		StatusError: "#f85149",
	}
}

// lightTheme returns a palette for light terminal backgrounds.
func lightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Foreground: "#24292f",
		Dim:        "#6e7781",
		Accent:     "#b45309",

		Border:      "#d0d7de",
		BorderFocus: "#b45309",
		Title:       "#24292f",

		PriceUp:   "#116329",
		PriceDown: "#a40e26",
		PriceFlat: "#57606a",

		ChartLine: "#0969da",
		ChartGrid: "#d8dee4",

		StatusOK:    "#116329",
		StatusWarn:  "#7d4e00",
		StatusError: "#a40e26",
	}
}

// highContrastTheme returns a maximum-legibility palette for trading floors
// and projector setups.
func highContrastTheme() Theme {
	return Theme{
		Name:       "high-contrast",
		Background: "#000000",
		Foreground: "#ffffff",
		Dim:        "#a0a0a0",
		Accent:     "#ffd700",

		Border:      "#808080",
		BorderFocus: "#ffd700",
		Title:       "#ffffff",

		PriceUp:   "#00ff00",
		PriceDown: "#ff0000",
		PriceFlat: "#c0c0c0",

		ChartLine: "#00ffff",
		ChartGrid: "#404040",

		StatusOK:    "#00ff00",
		StatusWarn:  "#ffff00",
		StatusError: "#ff0000",
	}
}
