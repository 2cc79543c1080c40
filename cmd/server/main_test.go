package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile = ""

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCommandDefaults(t *testing.T) {
	t.Setenv("NPK_MODEL_PATH", filepath.Join("..", "..", "internal", "model", "testdata", "dt_regressor.json"))

	out, err := runCLI(t, "predict")
	require.NoError(t, err)
	assert.Equal(t, "Predicted NPK Ratio: 3.14\n", out)
}

func TestPredictCommandScenario(t *testing.T) {
	t.Setenv("NPK_MODEL_PATH", filepath.Join("..", "..", "internal", "model", "testdata", "dt_regressor.json"))

	out, err := runCLI(t, "predict",
		"--phosphorous", "20", "--nitrogen", "15", "--potassium", "10",
		"--temperature", "30", "--humidity", "60", "--heat_index", "28",
		"--soil_moisture", "40", "--hour", "9", "--minute", "0",
	)
	require.NoError(t, err)
	assert.Equal(t, "Predicted NPK Ratio: 4.50\n", out)
}

func TestPredictCommandClampsFlags(t *testing.T) {
	t.Setenv("NPK_MODEL_PATH", filepath.Join("..", "..", "internal", "model", "testdata", "dt_regressor.json"))

	// hour clamps to 0, which takes the left branch
	out, err := runCLI(t, "predict", "--hour", "-4")
	require.NoError(t, err)
	assert.Equal(t, "Predicted NPK Ratio: 2.75\n", out)
}

func TestMissingArtifactFailsFast(t *testing.T) {
	t.Setenv("NPK_MODEL_PATH", filepath.Join(t.TempDir(), "dt_regressor.json"))

	for _, args := range [][]string{{"predict"}, {"serve"}, {}} {
		_, err := runCLI(t, args...)
		require.Error(t, err, "args %v", args)
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
}
