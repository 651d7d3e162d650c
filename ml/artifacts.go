package ml

import "fmt"

// ArtifactPaths names the files produced by the offline training run.
type ArtifactPaths struct {
	Columns   string
	Model     string
	ModelType string
}

// LoadArtifacts reads the column schema and model and checks that they fit
// together. Any failure leaves the caller without an Estimator.
func LoadArtifacts(paths ArtifactPaths) (*Estimator, error) {
	schema, err := LoadSchema(paths.Columns)
	if err != nil {
		return nil, fmt.Errorf("load columns %s: %w", paths.Columns, err)
	}
	model, err := LoadModel(paths.ModelType, paths.Model)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", paths.Model, err)
	}
	estimator, err := NewEstimator(schema, model)
	if err != nil {
		return nil, fmt.Errorf("artifacts %s and %s: %w", paths.Columns, paths.Model, err)
	}
	return estimator, nil
}
