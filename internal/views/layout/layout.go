package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"artvista/internal/views/theme"
)

// Layout wraps content in the document shell. The effective theme is exposed through
// the data-theme attribute on the root element.
func Layout(title string, def theme.Definition, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html lang="en" data-theme="`+
			templ.EscapeString(def.Key)+`"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="/assets/app.css"></head>`+
			`<body class="`+templ.EscapeString(def.BodyClass)+`">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
