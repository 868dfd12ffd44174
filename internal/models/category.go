package models

// Category classifies posts. Categories are managed elsewhere; this
// service only reads them.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
