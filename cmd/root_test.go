package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeprice/service"
)

func writeFixture(t *testing.T, modelCoef string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"columns.json": `{"data_columns": ["total_sqft", "bath", "bhk", "1st phase jp nagar", "indira nagar"]}`,
		"model.json":   `{"type": "linear_regression", "coef": ` + modelCoef + `, "intercept": -3.0}`,
		"config.yaml": `
artifacts:
  columns_path: columns.json
  model_path: model.json
log:
  level: error
history:
  path: history.db
`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return filepath.Join(dir, "config.yaml")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5, 20.0, 40.0]")

	out, err := run(t, "estimate", "--config", cfg, "--location", "Indira Nagar", "--sqft", "1000", "--bath", "2", "--bhk", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Estimated Price: ₹ 47.50 Lakhs")
	assert.Contains(t, out, "Location:   Indira Nagar")
}

func TestEstimateCommandJSON(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5, 20.0, 40.0]")

	out, err := run(t, "estimate", "--config", cfg, "--location", "Nowhere", "--sqft", "800", "--bath", "1", "--bhk", "2", "--json")
	require.NoError(t, err)

	var quote service.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.Equal(t, 4.5, quote.Price)
	assert.False(t, quote.LocationMatched)
}

func TestEstimateCommandRejectsOutOfRange(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5, 20.0, 40.0]")

	_, err := run(t, "estimate", "--config", cfg, "--bath", "0")
	assert.ErrorIs(t, err, service.ErrInvalidRequest)
}

func TestLocationsCommand(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5, 20.0, 40.0]")

	out, err := run(t, "locations", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1st phase jp nagar\nindira nagar\n", out)
}

func TestCommandsFailFastOnBadArtifacts(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5]")

	_, err := run(t, "locations", "--config", cfg)
	assert.Error(t, err)

	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(cfg), "columns.json")))
	_, err = run(t, "estimate", "--config", cfg, "--location", "indira nagar")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := writeFixture(t, "[0.01, 2.5, -1.5, 20.0, 40.0]")
	a, err := loadApp(cfg)
	require.NoError(t, err)
	a.config.HTTP.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.serve(ctx))

	_, err = os.Stat(a.config.History.Path)
	assert.NoError(t, err)
}
