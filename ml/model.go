package ml

import "errors"

var (
	ErrMalformedSchema  = errors.New("malformed column schema")
	ErrModelMismatch    = errors.New("model does not match column schema")
	ErrUnsupportedModel = errors.New("unsupported model type")
)

// Regressor is a trained model that maps one feature vector to a scalar.
type Regressor interface {
	Predict(features []float64) (float64, error)
	NumFeatures() int
}
