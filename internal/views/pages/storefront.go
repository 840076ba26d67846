package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"artvista/models"
)

// StorefrontData is everything the storefront page renders.
type StorefrontData struct {
	Session     models.Session
	SignedIn    bool
	Search      string
	Artworks    []models.Artwork
	Exhibitions []models.Exhibition
	CartCount   int
	CartTotal   float64
}

// Storefront renders the public gallery listing.
func Storefront(data StorefrontData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := templ.EscapeString[string]
		if _, err := fmt.Fprintf(w,
			`<header class="storefront-header"><p data-greeting>%s</p><a href="/api/cart" data-cart-count="%d">Cart (%d) %s</a></header>`,
			e(Greeting(data.Session, data.SignedIn)), data.CartCount, data.CartCount, e(FormatPrice(data.CartTotal)),
		); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<form method="get" action="/"><input type="search" name="q" value="%s" placeholder="Search by title or artist"></form>`,
			e(data.Search),
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="artwork-grid">`); err != nil {
			return err
		}
		if len(data.Artworks) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No masterpieces found matching your search.</p>`); err != nil {
				return err
			}
		}
		for _, a := range data.Artworks {
			if err := artworkCard(a).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}

		if len(data.Exhibitions) > 0 {
			if _, err := io.WriteString(w, `<section class="exhibitions"><h2>Exhibitions</h2><ul>`); err != nil {
				return err
			}
			for _, x := range data.Exhibitions {
				if _, err := fmt.Fprintf(w,
					`<li data-exhibition-id="%d"><h3>%s</h3><p>%s</p><small>Curated by %s</small></li>`,
					x.ID, e(x.Title), e(x.Description), e(DefaultDash(x.Curator)),
				); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul></section>`); err != nil {
				return err
			}
		}
		return nil
	})
}

func artworkCard(a models.Artwork) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := templ.EscapeString[string]
		_, err := fmt.Fprintf(w,
			`<article class="artwork-card" data-artwork-id="%s" data-status="%s">`+
				`<img src="%s" alt="%s" loading="lazy">`+
				`<h3>%s</h3><p class="artist">%s</p><p class="meta">%s, %s</p>`+
				`<p class="price">%s</p><span class="badge">%s</span></article>`,
			strconv.FormatInt(a.ID, 10), e(string(a.Status)),
			e(a.Image), e(a.Title),
			e(a.Title), e(a.Artist), e(DefaultDash(a.Medium)), e(DefaultDash(a.Year)),
			e(FormatPrice(a.Price)), e(StatusLabel(a.Status)),
		)
		return err
	})
}
