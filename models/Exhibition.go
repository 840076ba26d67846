package models

type Exhibition struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Curator     string `json:"curator"`
}
