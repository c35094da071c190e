package discovery

import (
	"strconv"
	"strings"

	"Go_Discovery/src/types"
)

const (
	LatitudeRequiredMessage  = "Latitude is required."
	LatitudeInvalidMessage   = "Latitude must be decimal degrees format and range from -90 to 90."
	LongitudeRequiredMessage = "Longitude is required."
	LongitudeInvalidMessage  = "Longitude must be decimal degrees format and range from -180 to 180."
)

type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	InvalidFormat
	InvalidRange
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case InvalidFormat:
		return "invalid_format"
	case InvalidRange:
		return "invalid_range"
	default:
		return "unknown"
	}
}

// ValidationError reports a rejected customer coordinate. InvalidFormat and
// InvalidRange share one message per axis.
type ValidationError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches on field and message so that a format error and a range error
// for the same axis compare equal.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Field == e.Field && t.Message == e.Message
}

var (
	ErrLatitudeRequired  = &ValidationError{Field: "lat", Kind: MissingField, Message: LatitudeRequiredMessage}
	ErrLatitudeInvalid   = &ValidationError{Field: "lat", Kind: InvalidRange, Message: LatitudeInvalidMessage}
	ErrLongitudeRequired = &ValidationError{Field: "lon", Kind: MissingField, Message: LongitudeRequiredMessage}
	ErrLongitudeInvalid  = &ValidationError{Field: "lon", Kind: InvalidRange, Message: LongitudeInvalidMessage}
)

type axis struct {
	field    string
	limit    float64
	required string
	invalid  string
}

var (
	latitudeAxis  = axis{field: "lat", limit: 90, required: LatitudeRequiredMessage, invalid: LatitudeInvalidMessage}
	longitudeAxis = axis{field: "lon", limit: 180, required: LongitudeRequiredMessage, invalid: LongitudeInvalidMessage}
)

// ValidateCoordinates checks latitude first, then longitude.
func ValidateCoordinates(latRaw, lonRaw string) (types.Coordinate, error) {
	lat, err := latitudeAxis.parse(latRaw)
	if err != nil {
		return types.Coordinate{}, err
	}
	lon, err := longitudeAxis.parse(lonRaw)
	if err != nil {
		return types.Coordinate{}, err
	}
	return types.Coordinate{Lat: lat, Lon: lon}, nil
}

func ValidateLatitude(raw string) (float64, error) {
	return latitudeAxis.parse(raw)
}

func ValidateLongitude(raw string) (float64, error) {
	return longitudeAxis.parse(raw)
}

func (a axis) parse(raw string) (float64, error) {
	if raw == "" {
		return 0, &ValidationError{Field: a.field, Kind: MissingField, Message: a.required}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{Field: a.field, Kind: InvalidFormat, Message: a.invalid}
	}

	// written this way so NaN is rejected
	if !(v >= -a.limit && v <= a.limit) {
		return 0, &ValidationError{Field: a.field, Kind: InvalidRange, Message: a.invalid}
	}
	return v, nil
}
