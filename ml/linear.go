package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

const ModelTypeLinearRegression = "linear_regression"

// LinearRegression evaluates a fitted ordinary least squares model:
// y = coef·x + intercept.
type LinearRegression struct {
	coef      *mat.VecDense
	intercept float64
}

// linearPayload is the on-disk form exported by the training notebook.
type linearPayload struct {
	Type      string    `json:"type,omitempty"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func NewLinearRegression(coef []float64, intercept float64) (*LinearRegression, error) {
	if len(coef) == 0 {
		return nil, errors.New("coefficients empty")
	}
	for i, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, errors.New("intercept is not finite")
	}
	data := append([]float64(nil), coef...)
	return &LinearRegression{coef: mat.NewVecDense(len(data), data), intercept: intercept}, nil
}

func (lr *LinearRegression) NumFeatures() int {
	if lr.coef == nil {
		return 0
	}
	return lr.coef.Len()
}

func (lr *LinearRegression) Predict(features []float64) (float64, error) {
	if lr.coef == nil {
		return 0, errors.New("model not loaded")
	}
	if len(features) != lr.coef.Len() {
		return 0, fmt.Errorf("%w: got %d features, model expects %d", ErrModelMismatch, len(features), lr.coef.Len())
	}
	x := mat.NewVecDense(len(features), features)
	return mat.Dot(lr.coef, x) + lr.intercept, nil
}

// Coefficients returns a copy of the fitted weights.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.coef == nil {
		return nil
	}
	return mat.Col(nil, 0, lr.coef)
}

func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

func (lr *LinearRegression) Save(path string) error {
	if lr.coef == nil {
		return errors.New("model not loaded")
	}
	payload, err := json.Marshal(linearPayload{
		Type:      ModelTypeLinearRegression,
		Coef:      lr.Coefficients(),
		Intercept: lr.intercept,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (lr *LinearRegression) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p linearPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	if p.Type != "" && p.Type != ModelTypeLinearRegression {
		return fmt.Errorf("%w: file holds %q", ErrUnsupportedModel, p.Type)
	}
	loaded, err := NewLinearRegression(p.Coef, p.Intercept)
	if err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	*lr = *loaded
	return nil
}
