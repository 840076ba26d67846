package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"artvista/internal/apperror"
	"artvista/models"
)

// ValidateArtwork checks the fields every submitted artwork must carry.
func ValidateArtwork(a models.Artwork) error {
	if err := apperror.Required("title", a.Title, "Please give the artwork a title."); err != nil {
		return err
	}
	if err := apperror.Required("artist", a.Artist, "Please name the artist."); err != nil {
		return err
	}
	if a.Price <= 0 {
		return apperror.Invalid("price", "Price must be greater than zero.")
	}
	if _, err := strconv.Atoi(strings.TrimSpace(a.Year)); err != nil {
		return apperror.Invalid("year", "Year must be a number.")
	}
	if !validImageURL(a.Image) {
		return apperror.Invalid("image", "Please provide an http(s) image URL.")
	}
	if err := apperror.Required("medium", a.Medium, "Please describe the medium."); err != nil {
		return err
	}
	return apperror.Required("history", a.History, "Please tell the story behind the artwork.")
}

// ValidateExhibition checks the fields every exhibition must carry.
func ValidateExhibition(e models.Exhibition) error {
	if err := apperror.Required("title", e.Title, "Please give the exhibition a title."); err != nil {
		return err
	}
	if err := apperror.Required("description", e.Description, "Please describe the exhibition."); err != nil {
		return err
	}
	return apperror.Required("curator", e.Curator, "Please assign a curator.")
}

func validImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimArtwork(a models.Artwork) models.Artwork {
	a.Title = strings.TrimSpace(a.Title)
	a.Artist = strings.TrimSpace(a.Artist)
	a.History = strings.TrimSpace(a.History)
	a.Medium = strings.TrimSpace(a.Medium)
	a.Year = strings.TrimSpace(a.Year)
	a.Image = strings.TrimSpace(a.Image)
	return a
}
