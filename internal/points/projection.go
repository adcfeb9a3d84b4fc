package points

import (
	"github.com/JaimeStill/ecopoint/pkg/query"
	"github.com/JaimeStill/ecopoint/pkg/repository"
)

var projection = query.NewProjectionMap("public", "points", "p").
	Project("id", "ID").
	Project("image", "Image").
	Project("name", "Name").
	Project("email", "Email").
	Project("whatsapp", "Whatsapp").
	Project("latitude", "Latitude").
	Project("longitude", "Longitude").
	Project("city", "City").
	Project("uf", "UF").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const defaultSort = "Name"

func scanPoint(s repository.Scanner) (Point, error) {
	var p Point
	err := s.Scan(
		&p.ID,
		&p.Image,
		&p.Name,
		&p.Email,
		&p.Whatsapp,
		&p.Latitude,
		&p.Longitude,
		&p.City,
		&p.UF,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
