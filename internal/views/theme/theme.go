package theme

import (
	"strings"

	"artvista/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Definition describes how a theme id is presented.
type Definition struct {
	Key         string
	Label       string
	Description string
	Gallery     bool
	BodyClass   string
}

var catalogue = map[string]Definition{
	models.ThemeLight: {
		Key:         models.ThemeLight,
		Label:       "Light",
		Description: "Bright gallery walls with charcoal type.",
		BodyClass:   "min-h-screen bg-stone-50 text-stone-900",
	},
	models.ThemeDark: {
		Key:         models.ThemeDark,
		Label:       "Dark",
		Description: "Low light viewing with soft contrast.",
		BodyClass:   "min-h-screen bg-neutral-950 text-neutral-100",
	},
	models.ThemeMidnight: {
		Key:         models.ThemeMidnight,
		Label:       "Midnight",
		Description: "Deep blue hall lit by indigo accents.",
		BodyClass:   "min-h-screen bg-slate-950 text-slate-100",
	},
	models.GalleryMinimalist: {
		Key:         models.GalleryMinimalist,
		Label:       "Minimalist",
		Description: "White cube, nothing between you and the work.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-white text-neutral-900",
	},
	models.GalleryBaroque: {
		Key:         models.GalleryBaroque,
		Label:       "Baroque",
		Description: "Gilded frames on burgundy velvet.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-rose-950 text-amber-100",
	},
	models.GalleryDigitalEcho: {
		Key:         models.GalleryDigitalEcho,
		Label:       "Digital Echo",
		Description: "Neon grid for new media.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-zinc-950 text-cyan-200",
	},
	models.GallerySurrealist: {
		Key:         models.GallerySurrealist,
		Label:       "Surrealist",
		Description: "Dream palette with drifting shadows.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-violet-950 text-violet-100",
	},
	models.GalleryNeoClassical: {
		Key:         models.GalleryNeoClassical,
		Label:       "Neo-Classical",
		Description: "Marble and serif capitals.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-stone-100 text-stone-800",
	},
	models.GalleryAbstract: {
		Key:         models.GalleryAbstract,
		Label:       "Abstract",
		Description: "Bold fields of primary colour.",
		Gallery:     true,
		BodyClass:   "min-h-screen bg-amber-50 text-blue-950",
	},
}

// Resolve returns the definition for key, falling back to the default UI theme.
func Resolve(key string) Definition {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[models.DefaultTheme]
}

// UIOptions lists the visitor-selectable themes.
func UIOptions() []Option {
	return options(models.UIThemes)
}

// GalleryOptions lists the curator-selectable gallery themes.
func GalleryOptions() []Option {
	return options(models.GalleryThemes)
}

func options(keys []string) []Option {
	out := make([]Option, 0, len(keys))
	for _, key := range keys {
		out = append(out, Option{Value: key, Label: catalogue[key].Label})
	}
	return out
}
