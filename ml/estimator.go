package ml

import (
	"errors"
	"fmt"
	"strconv"
)

// Estimator turns a (location, area, bathrooms, bedrooms) request into a
// price using a loaded schema and model. It is immutable once built and
// safe for concurrent use.
type Estimator struct {
	schema *Schema
	model  Regressor
}

func NewEstimator(schema *Schema, model Regressor) (*Estimator, error) {
	if schema == nil {
		return nil, errors.New("schema is required")
	}
	if model == nil {
		return nil, errors.New("model is required")
	}
	if model.NumFeatures() != schema.Len() {
		return nil, fmt.Errorf("%w: schema has %d columns, model expects %d", ErrModelMismatch, schema.Len(), model.NumFeatures())
	}
	return &Estimator{schema: schema, model: model}, nil
}

// MatchLocation reports the feature slot for location, if it is known.
func (e *Estimator) MatchLocation(location string) (int, bool) {
	return e.schema.LocationIndex(location)
}

// FeatureVector builds the model input. An unknown location leaves every
// location slot at zero.
func (e *Estimator) FeatureVector(location string, area, bathrooms, bedrooms float64) []float64 {
	x := make([]float64, e.schema.Len())
	x[0] = area
	x[1] = bathrooms
	x[2] = bedrooms
	if idx, ok := e.MatchLocation(location); ok {
		x[idx] = 1
	}
	return x
}

// Estimate returns the predicted price rounded to two decimals.
func (e *Estimator) Estimate(location string, area, bathrooms, bedrooms float64) (float64, error) {
	price, err := e.model.Predict(e.FeatureVector(location, area, bathrooms, bedrooms))
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return Round2(price), nil
}

func (e *Estimator) Locations() []string {
	return e.schema.Locations()
}

func (e *Estimator) Schema() *Schema {
	return e.schema
}

// Round2 rounds to two decimal places using the exact binary value of v,
// so 2.675 (stored just below) becomes 2.67.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
