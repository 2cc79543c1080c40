// Package form holds the prediction input fields, their bounds and defaults,
// and the conversions between submitted widget state, feature vectors and
// rendered results.
package form

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

type Kind string

const (
	KindFloat   Kind = "float"
	KindInteger Kind = "integer"
)

// Field describes one numeric input control.
type Field struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Kind    Kind    `json:"kind"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Step is the increment used by the input control.
func (f Field) Step() string {
	if f.Kind == KindInteger {
		return "1"
	}
	return "any"
}

// Clamp pins v into [Min, Max]. Integer fields are rounded first.
func (f Field) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return f.Default
	}
	if f.Kind == KindInteger {
		v = math.Round(v)
	}
	return math.Min(math.Max(v, f.Min), f.Max)
}

// Format renders a value the way the input control displays it.
func (f Field) Format(v float64) string {
	if f.Kind == KindInteger {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fields lists the inputs in the order the model consumes them.
var Fields = []Field{
	{Name: "phosphorous", Label: "Phosphorous", Kind: KindFloat, Min: 0, Max: 100, Default: 10},
	{Name: "nitrogen", Label: "Nitrogen", Kind: KindFloat, Min: 0, Max: 100, Default: 10},
	{Name: "potassium", Label: "Potassium", Kind: KindFloat, Min: 0, Max: 100, Default: 10},
	{Name: "temperature", Label: "Temperature (°C)", Kind: KindFloat, Min: -10, Max: 50, Default: 25},
	{Name: "humidity", Label: "Humidity (%)", Kind: KindFloat, Min: 0, Max: 100, Default: 50},
	{Name: "heat_index", Label: "Heat Index", Kind: KindFloat, Min: -10, Max: 50, Default: 25},
	{Name: "soil_moisture", Label: "Soil Moisture (%)", Kind: KindFloat, Min: 0, Max: 100, Default: 50},
	{Name: "hour", Label: "Hour", Kind: KindInteger, Min: 0, Max: 23, Default: 12},
	{Name: "minute", Label: "Minute", Kind: KindInteger, Min: 0, Max: 59, Default: 30},
}

// Lookup finds a field by name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FeatureNames returns the field names in vector order.
func FeatureNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// Request is one set of inputs. JSON field names match Fields.
type Request struct {
	Phosphorous  float64 `json:"phosphorous"`
	Nitrogen     float64 `json:"nitrogen"`
	Potassium    float64 `json:"potassium"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	HeatIndex    float64 `json:"heat_index"`
	SoilMoisture float64 `json:"soil_moisture"`
	Hour         int     `json:"hour"`
	Minute       int     `json:"minute"`
}

// Defaults returns a request with every field at its declared default.
func Defaults() Request {
	var r Request
	for i, f := range Fields {
		r.set(i, f.Default)
	}
	return r
}

// FromValues builds a request from submitted form values. Missing, empty or
// unparsable values take the field default; everything else is clamped.
func FromValues(values url.Values) Request {
	var r Request
	for i, f := range Fields {
		v := f.Default
		if raw := strings.TrimSpace(values.Get(f.Name)); raw != "" {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				v = parsed
			}
		}
		r.set(i, f.Clamp(v))
	}
	return r
}

// FromMap is FromValues for already-decoded numbers.
func FromMap(values map[string]float64) Request {
	var r Request
	for i, f := range Fields {
		v, ok := values[f.Name]
		if !ok {
			v = f.Default
		}
		r.set(i, f.Clamp(v))
	}
	return r
}

// Clamp returns a copy with every field pinned into its range.
func (r Request) Clamp() Request {
	vec := r.Vector()
	var out Request
	for i, f := range Fields {
		out.set(i, f.Clamp(vec[i]))
	}
	return out
}

// Vector returns the single feature row passed to the model.
func (r Request) Vector() []float64 {
	return []float64{
		r.Phosphorous,
		r.Nitrogen,
		r.Potassium,
		r.Temperature,
		r.Humidity,
		r.HeatIndex,
		r.SoilMoisture,
		float64(r.Hour),
		float64(r.Minute),
	}
}

// Values returns the request as display strings keyed by field name.
func (r Request) Values() map[string]string {
	vec := r.Vector()
	out := make(map[string]string, len(Fields))
	for i, f := range Fields {
		out[f.Name] = f.Format(vec[i])
	}
	return out
}

func (r *Request) set(i int, v float64) {
	switch i {
	case 0:
		r.Phosphorous = v
	case 1:
		r.Nitrogen = v
	case 2:
		r.Potassium = v
	case 3:
		r.Temperature = v
	case 4:
		r.Humidity = v
	case 5:
		r.HeatIndex = v
	case 6:
		r.SoilMoisture = v
	case 7:
		r.Hour = int(v)
	case 8:
		r.Minute = int(v)
	default:
		panic(fmt.Sprintf("form: field index %d out of range", i))
	}
}

// FormatResult renders a prediction with two decimals.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
