package db

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"Go_Discovery/src/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// catalogDocument is the JSON catalog layout: {"restaurants": [...]}.
type catalogDocument struct {
	Restaurants []restaurantRecord `json:"restaurants"`
}

// restaurantRecord uses pointers so that false and 0 still count as present.
type restaurantRecord struct {
	Blurhash   *string   `json:"blurhash" validate:"required"`
	LaunchDate *string   `json:"launch_date" validate:"required,datetime=2006-01-02"`
	Location   []float64 `json:"location" validate:"required,len=2"`
	Name       *string   `json:"name" validate:"required"`
	Online     *bool     `json:"online" validate:"required"`
	Popularity *float64  `json:"popularity" validate:"required"`
}

func (r restaurantRecord) toRestaurant() (types.Restaurant, error) {
	if err := validate.Struct(r); err != nil {
		return types.Restaurant{}, describeValidation(err)
	}

	lat, lon := r.Location[0], r.Location[1]
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return types.Restaurant{}, fmt.Errorf("location [%v, %v] out of range", lat, lon)
	}

	launch, err := types.ParseDate(*r.LaunchDate)
	if err != nil {
		return types.Restaurant{}, fmt.Errorf("launch_date: %w", err)
	}

	return types.Restaurant{
		Blurhash:   *r.Blurhash,
		LaunchDate: launch,
		Location:   types.GeoPoint{Lat: lat, Lon: lon},
		Name:       *r.Name,
		Online:     *r.Online,
		Popularity: *r.Popularity,
	}, nil
}

func fromRestaurant(r types.Restaurant) restaurantRecord {
	launch := r.LaunchDate.String()
	return restaurantRecord{
		Blurhash:   &r.Blurhash,
		LaunchDate: &launch,
		Location:   []float64{r.Location.Lat, r.Location.Lon},
		Name:       &r.Name,
		Online:     &r.Online,
		Popularity: &r.Popularity,
	}
}

// toRestaurants converts every record or fails on the first malformed one.
func toRestaurants(records []restaurantRecord) ([]types.Restaurant, error) {
	restaurants := make([]types.Restaurant, 0, len(records))
	for i, rec := range records {
		r, err := rec.toRestaurant()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", types.ErrMalformedRecord, i, err)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}
