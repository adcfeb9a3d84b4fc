package points

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/ecopoint/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// CreateRequest holds the text fields of a point submission as received.
type CreateRequest struct {
	Name      string `form:"name" validate:"required,max=255"`
	Email     string `form:"email" validate:"required,email"`
	Whatsapp  string `form:"whatsapp" validate:"required,number"`
	Latitude  string `form:"latitude" validate:"required,float,latitude"`
	Longitude string `form:"longitude" validate:"required,float,longitude"`
	City      string `form:"city" validate:"required,max=100"`
	UF        string `form:"uf" validate:"required,alpha,max=2"`
	Items     string `form:"items" validate:"required,itemlist"`
}

// CreateRequestFromForm reads the submission fields from form values,
// trimming surrounding whitespace.
func CreateRequestFromForm(values url.Values) CreateRequest {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	return CreateRequest{
		Name:      get("name"),
		Email:     get("email"),
		Whatsapp:  get("whatsapp"),
		Latitude:  get("latitude"),
		Longitude: get("longitude"),
		City:      get("city"),
		UF:        strings.ToUpper(get("uf")),
		Items:     get("items"),
	}
}

// Command converts a validated request into a CreateCommand.
func (r CreateRequest) Command(image *Image) (CreateCommand, error) {
	lat, err := strconv.ParseFloat(r.Latitude, 64)
	if err != nil {
		return CreateCommand{}, err
	}
	lng, err := strconv.ParseFloat(r.Longitude, 64)
	if err != nil {
		return CreateCommand{}, err
	}
	ids, err := ParseItems(r.Items)
	if err != nil {
		return CreateCommand{}, err
	}

	return CreateCommand{
		Name:      r.Name,
		Email:     r.Email,
		Whatsapp:  r.Whatsapp,
		Latitude:  lat,
		Longitude: lng,
		City:      r.City,
		UF:        r.UF,
		Items:     ids,
		Image:     image,
	}, nil
}

// NewValidator returns a validator that understands the "itemlist" tag.
func NewValidator() *validation.Validator {
	v := validation.New()
	if err := v.Register("itemlist", isItemList, validation.KindMalformed); err != nil {
		panic(err)
	}
	return v
}

func isItemList(fl validator.FieldLevel) bool {
	_, err := ParseItems(fl.Field().String())
	return err == nil
}
