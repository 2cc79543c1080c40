package form

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsVector(t *testing.T) {
	assert.Equal(t,
		[]float64{10.0, 10.0, 10.0, 25.0, 50.0, 25.0, 50.0, 12, 30},
		Defaults().Vector())
}

func TestFieldsMatchRequestOrder(t *testing.T) {
	require.Len(t, Fields, 9)
	assert.Equal(t, []string{
		"phosphorous", "nitrogen", "potassium", "temperature", "humidity",
		"heat_index", "soil_moisture", "hour", "minute",
	}, FeatureNames())

	defaults := Defaults().Vector()
	for i, f := range Fields {
		assert.Equal(t, f.Default, defaults[i], f.Name)
		assert.GreaterOrEqual(t, f.Default, f.Min, f.Name)
		assert.LessOrEqual(t, f.Default, f.Max, f.Name)
	}
}

func TestFromValuesClampsToBounds(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"below minimum", "-5", 0.0},
		{"above maximum", "105", 100.0},
		{"in range", "63.5", 63.5},
		{"at minimum", "0", 0.0},
		{"at maximum", "100", 100.0},
		{"empty takes default", "", 50.0},
		{"garbage takes default", "wet", 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := FromValues(url.Values{"humidity": {tt.value}})
			assert.Equal(t, tt.want, req.Humidity)
		})
	}
}

func TestFromValuesIntegerFields(t *testing.T) {
	req := FromValues(url.Values{
		"hour":   {"30"},
		"minute": {"14.6"},
	})
	assert.Equal(t, 23, req.Hour)
	assert.Equal(t, 15, req.Minute)

	req = FromValues(url.Values{"hour": {"-1"}, "minute": {"-0.2"}})
	assert.Equal(t, 0, req.Hour)
	assert.Equal(t, 0, req.Minute)
}

func TestFromValuesScenario(t *testing.T) {
	req := FromValues(url.Values{
		"phosphorous":   {"20"},
		"nitrogen":      {"15"},
		"potassium":     {"10"},
		"temperature":   {"30"},
		"humidity":      {"60"},
		"heat_index":    {"28"},
		"soil_moisture": {"40"},
		"hour":          {"9"},
		"minute":        {"0"},
	})
	assert.Equal(t, []float64{20, 15, 10, 30, 60, 28, 40, 9, 0}, req.Vector())
}

func TestFromMapDefaultsMissingFields(t *testing.T) {
	req := FromMap(map[string]float64{"temperature": 80, "nitrogen": 42})
	want := Defaults()
	want.Temperature = 50
	want.Nitrogen = 42
	assert.Equal(t, want, req)
}

func TestRequestClamp(t *testing.T) {
	req := Request{
		Phosphorous:  -1,
		Nitrogen:     101,
		Potassium:    50,
		Temperature:  -20,
		Humidity:     50,
		HeatIndex:    60,
		SoilMoisture: 200,
		Hour:         24,
		Minute:       -3,
	}
	assert.Equal(t, []float64{0, 100, 50, -10, 50, 50, 100, 23, 0}, req.Clamp().Vector())
}

func TestFieldClampNaN(t *testing.T) {
	f := Fields[4]
	assert.Equal(t, f.Default, f.Clamp(math.NaN()))
}

func TestValues(t *testing.T) {
	vals := Defaults().Values()
	assert.Equal(t, "10", vals["phosphorous"])
	assert.Equal(t, "-10", Fields[3].Format(-10))
	assert.Equal(t, "63.555", Fields[4].Format(63.555))
	assert.Equal(t, "12", vals["hour"])
	assert.Equal(t, "30", vals["minute"])
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "3.14", FormatResult(3.14159))
	assert.Equal(t, "2.00", FormatResult(2))
	assert.Equal(t, "-0.50", FormatResult(-0.5))
	assert.Equal(t, "1234.57", FormatResult(1234.5678))
}

func TestFormatRoundTrips(t *testing.T) {
	req := FromValues(url.Values{"humidity": {"63.555"}, "temperature": {"-3.125"}})
	vals := req.Values()
	assert.Equal(t, "63.555", vals["humidity"])
	assert.Equal(t, "-3.125", vals["temperature"])

	again := FromValues(url.Values{"humidity": {vals["humidity"]}, "temperature": {vals["temperature"]}})
	assert.Equal(t, req.Vector(), again.Vector())
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("heat_index")
	require.True(t, ok)
	assert.Equal(t, "Heat Index", f.Label)
	assert.Equal(t, "any", f.Step())

	_, ok = Lookup("Humidity")
	assert.False(t, ok)
}
