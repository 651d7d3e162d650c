package ml

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLinearRegressionPredict(t *testing.T) {
	model, err := NewLinearRegression([]float64{2, -1, 0.5}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := model.Predict([]float64{3, 4, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-4) > 1e-12 {
		t.Fatalf("expected 4, got %v", got)
	}
	if _, err := model.Predict([]float64{1, 2}); !errors.Is(err, ErrModelMismatch) {
		t.Fatalf("expected ErrModelMismatch, got %v", err)
	}
}

func TestLinearRegressionRejectsNonFinite(t *testing.T) {
	if _, err := NewLinearRegression(nil, 0); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, err := NewLinearRegression([]float64{1, math.NaN()}, 0); err == nil {
		t.Fatal("expected error for NaN coefficient")
	}
	if _, err := NewLinearRegression([]float64{1}, math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite intercept")
	}
}

func TestLinearRegressionSaveLoad(t *testing.T) {
	model, _ := NewLinearRegression([]float64{0.5, 1.5}, -2)
	path := filepath.Join(t.TempDir(), "model.json")
	if err := model.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := &LinearRegression{}
	if err := loaded.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Coefficients(), []float64{0.5, 1.5}) || loaded.Intercept() != -2 {
		t.Fatalf("unexpected model: %v %v", loaded.Coefficients(), loaded.Intercept())
	}
}

func TestLoadModel(t *testing.T) {
	model, err := LoadModel(ModelTypeLinearRegression, filepath.Join("testdata", "model.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.NumFeatures() != 5 {
		t.Fatalf("expected 5 features, got %d", model.NumFeatures())
	}

	if _, err := LoadModel("decision_tree", filepath.Join("testdata", "model.json")); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "ridge.json")
	if err := os.WriteFile(path, []byte(`{"type":"ridge","coef":[1],"intercept":0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(ModelTypeLinearRegression, path); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}
}
