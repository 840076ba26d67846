package models

// ArtworkStatus tracks where an artwork is in the approval workflow.
type ArtworkStatus string

const (
	StatusPending  ArtworkStatus = "pending"
	StatusApproved ArtworkStatus = "approved"
)

type Artwork struct {
	ID      int64         `json:"id"`
	Title   string        `json:"title"`
	Artist  string        `json:"artist"`
	Price   float64       `json:"price"`
	History string        `json:"history"`
	Medium  string        `json:"medium"`
	Year    string        `json:"year"`
	Image   string        `json:"image"`
	Status  ArtworkStatus `json:"status"`
}

// Approved reports whether the artwork is visible in the public gallery.
func (a Artwork) Approved() bool {
	return a.Status == StatusApproved
}
