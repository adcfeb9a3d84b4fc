// Package points manages waste collection points: paginated listing with
// location and item filters, detail lookup, and multipart registration with
// an optional photo kept in blob storage.
package points

import (
	"time"

	"github.com/JaimeStill/ecopoint/internal/items"
	"github.com/google/uuid"
)

// Point is a registered collection point. Image is the storage key of its
// photo and is empty when none was uploaded.
type Point struct {
	ID        uuid.UUID `json:"id"`
	Image     string    `json:"image"`
	ImageURL  string    `json:"image_url"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Whatsapp  string    `json:"whatsapp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	City      string    `json:"city"`
	UF        string    `json:"uf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail is a point together with the item categories it collects.
type Detail struct {
	Point
	Items []items.Item `json:"items"`
}

// Image is an uploaded photo whose content type has already been sniffed.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateCommand contains the validated data for a new point.
type CreateCommand struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	Items     []int
	Image     *Image
}
