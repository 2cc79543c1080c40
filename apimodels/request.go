package apimodels

import (
	"fmt"
	"sort"

	"github.com/sozercan/npk-predictor/internal/form"
)

// PredictionRequest is the JSON body of the prediction API. Fields that are
// absent or null take their defaults; values outside a field's range are
// clamped.
type PredictionRequest map[string]*float64

// Validate rejects keys that do not name an input field.
func (r PredictionRequest) Validate() error {
	var unknown []string
	for name := range r {
		if _, ok := form.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown fields %q, expected %q", unknown, form.FeatureNames())
	}
	return nil
}

func (r PredictionRequest) Form() form.Request {
	values := make(map[string]float64, len(r))
	for name, v := range r {
		if v != nil {
			values[name] = *v
		}
	}
	return form.FromMap(values)
}
