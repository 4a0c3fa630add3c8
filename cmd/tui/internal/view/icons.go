package view

// categoryGlyphs maps the icon names stored on categories to terminal
// glyphs. The names come from the persisted data format; unknown names
// fall back to defaultGlyph.
var categoryGlyphs = map[string]string{
	"Wallet":          "👛",
	"Laptop":          "💻",
	"TrendingUp":      "📈",
	"Gift":            "🎁",
	"UtensilsCrossed": "🍽",
	"Car":             "🚗",
	"ShoppingBag":     "🛍",
	"Receipt":         "🧾",
	"Gamepad2":        "🎮",
	"Heart":           "❤",
	"GraduationCap":   "🎓",
	"MoreHorizontal":  "⋯",
	"Circle":          "●",
	"Home":            "🏠",
	"Plane":           "✈",
	"Phone":           "📱",
	"Wifi":            "📶",
	"Zap":             "⚡",
	"Droplet":         "💧",
	"CreditCard":      "💳",
}

const defaultGlyph = "●"

// CategoryGlyph resolves an icon name to its glyph.
func CategoryGlyph(icon string) string {
	if g, ok := categoryGlyphs[icon]; ok {
		return g
	}

	return defaultGlyph
}

// IconNames lists the icon names offered when editing a category.
func IconNames() []string {
	return []string{
		"Wallet", "Laptop", "TrendingUp", "Gift", "UtensilsCrossed",
		"Car", "ShoppingBag", "Receipt", "Gamepad2", "Heart",
		"GraduationCap", "MoreHorizontal", "Circle", "Home", "Plane",
		"Phone", "Wifi", "Zap", "Droplet", "CreditCard",
	}
}
