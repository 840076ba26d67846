package models

import "strings"

const (
	ThemeLight    = "light"
	ThemeDark     = "dark"
	ThemeMidnight = "midnight"

	// DefaultTheme is applied when no valid UI theme has been chosen.
	DefaultTheme = ThemeLight
)

const (
	GalleryMinimalist   = "minimalist"
	GalleryBaroque      = "baroque"
	GalleryDigitalEcho  = "digital-echo"
	GallerySurrealist   = "surrealist"
	GalleryNeoClassical = "neo-classical"
	GalleryAbstract     = "abstract"
)

// UIThemes lists the user-controlled themes in display order.
var UIThemes = []string{ThemeLight, ThemeDark, ThemeMidnight}

// GalleryThemes lists the curator-controlled aesthetic overrides in display order.
var GalleryThemes = []string{
	GalleryMinimalist,
	GalleryBaroque,
	GalleryDigitalEcho,
	GallerySurrealist,
	GalleryNeoClassical,
	GalleryAbstract,
}

// ValidUITheme reports whether value names a user-controlled theme.
func ValidUITheme(value string) bool {
	return contains(UIThemes, value)
}

// ValidGalleryTheme reports whether value names a gallery theme.
func ValidGalleryTheme(value string) bool {
	return contains(GalleryThemes, value)
}

// NormalizeUITheme trims and validates value, falling back to DefaultTheme.
func NormalizeUITheme(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if ValidUITheme(trimmed) {
		return trimmed
	}
	return DefaultTheme
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
