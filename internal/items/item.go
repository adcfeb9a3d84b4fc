// Package items serves the fixed set of recyclable waste categories a
// collection point may accept.
package items

import "strings"

// Item is a waste category. Image is the storage key of its icon;
// ImageURL is the absolute address it is downloadable from.
type Item struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
}

// ImageURL joins the uploads base address and a storage key.
func ImageURL(uploadsURL, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSuffix(uploadsURL, "/") + "/" + strings.TrimPrefix(key, "/")
}
