package discovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Go_Discovery/src/types"
)

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		wantKind ErrorKind
		wantMsg  string
	}{
		{name: "missing", raw: "", wantKind: MissingField, wantMsg: LatitudeRequiredMessage},
		{name: "not a number", raw: "abc.", wantKind: InvalidFormat, wantMsg: LatitudeInvalidMessage},
		{name: "blank", raw: "   ", wantKind: InvalidFormat, wantMsg: LatitudeInvalidMessage},
		{name: "above range", raw: "100", wantKind: InvalidRange, wantMsg: LatitudeInvalidMessage},
		{name: "below range", raw: "-100", wantKind: InvalidRange, wantMsg: LatitudeInvalidMessage},
		{name: "just above range", raw: "90.000001", wantKind: InvalidRange, wantMsg: LatitudeInvalidMessage},
		{name: "NaN", raw: "NaN", wantKind: InvalidRange, wantMsg: LatitudeInvalidMessage},
		{name: "infinity", raw: "-Inf", wantKind: InvalidRange, wantMsg: LatitudeInvalidMessage},
		{name: "north pole", raw: "90", want: 90},
		{name: "south pole", raw: "-90", want: -90},
		{name: "helsinki", raw: "60.1709", want: 60.1709},
		{name: "surrounding spaces", raw: " 60.5 ", want: 60.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateLatitude(tt.raw)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, "lat", verr.Field)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateLongitude(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		wantKind ErrorKind
		wantMsg  string
	}{
		{name: "missing", raw: "", wantKind: MissingField, wantMsg: LongitudeRequiredMessage},
		{name: "not a number", raw: "abc.", wantKind: InvalidFormat, wantMsg: LongitudeInvalidMessage},
		{name: "above range", raw: "200", wantKind: InvalidRange, wantMsg: LongitudeInvalidMessage},
		{name: "below range", raw: "-300", wantKind: InvalidRange, wantMsg: LongitudeInvalidMessage},
		{name: "antimeridian", raw: "180", want: 180},
		{name: "negative antimeridian", raw: "-180", want: -180},
		{name: "latitude range is not enough", raw: "120.5", want: 120.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateLongitude(tt.raw)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, "lon", verr.Field)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	t.Run("latitude is checked first", func(t *testing.T) {
		_, err := ValidateCoordinates("", "")
		assert.ErrorIs(t, err, ErrLatitudeRequired)

		_, err = ValidateCoordinates("abc", "")
		assert.ErrorIs(t, err, ErrLatitudeInvalid)
	})

	t.Run("missing longitude", func(t *testing.T) {
		_, err := ValidateCoordinates("60.17", "")
		assert.ErrorIs(t, err, ErrLongitudeRequired)
	})

	t.Run("format and range share one error per axis", func(t *testing.T) {
		_, formatErr := ValidateCoordinates("60.17", "east")
		_, rangeErr := ValidateCoordinates("60.17", "181")
		assert.ErrorIs(t, formatErr, ErrLongitudeInvalid)
		assert.ErrorIs(t, rangeErr, ErrLongitudeInvalid)
		assert.False(t, errors.Is(rangeErr, ErrLatitudeInvalid))
	})

	t.Run("valid pair is kept as given", func(t *testing.T) {
		got, err := ValidateCoordinates("60.174", "24.941244")
		require.NoError(t, err)
		assert.Equal(t, types.Coordinate{Lat: 60.174, Lon: 24.941244}, got)
	})
}

func TestOutOfRangeLatitudesAlwaysRejected(t *testing.T) {
	for _, raw := range []string{"90.5", "91", "180", "1e6", "-90.0001", "-1000"} {
		_, err := ValidateCoordinates(raw, "0")
		assert.ErrorIs(t, err, ErrLatitudeInvalid, raw)
	}
	for _, raw := range []string{"180.5", "181", "360", "-180.0001", "-1e9"} {
		_, err := ValidateCoordinates("0", raw)
		assert.ErrorIs(t, err, ErrLongitudeInvalid, raw)
	}
}
