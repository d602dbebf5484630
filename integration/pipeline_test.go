//go:build basic

// Package integration contains end-to-end tests that run the helios binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHeliosWithSQLite runs the whole pipeline against a SQLite file.
func TestHeliosWithSQLite(t *testing.T) {
	runPipeline(t, "sqlite:///"+filepath.Join(t.TempDir(), "helios.db"))
}

// TestReportWithoutStore degrades both lines and still exits 0.
func TestReportWithoutStore(t *testing.T) {
	out, err := runHelios(t, t.TempDir(), heliosEnv(""), "report")
	require.NoError(t, err)
	assert.Contains(t, out, "📈 SALES: Sales analysis unavailable.")
	assert.Contains(t, out, "👥 CHURN: Churn analysis unavailable.")
}

// TestReportWithUnreachableStore degrades both lines and still exits 0.
func TestReportWithUnreachableStore(t *testing.T) {
	out, err := runHelios(t, t.TempDir(), heliosEnv("postgres://nobody@127.0.0.1:1/none?connect_timeout=1"), "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Sales analysis unavailable.")
	assert.Contains(t, out, "Churn analysis unavailable.")
}

// TestReportWithMalformedStoreURL degrades both lines and still exits 0,
// while commands that need the store fail.
func TestReportWithMalformedStoreURL(t *testing.T) {
	dir := t.TempDir()
	env := heliosEnv("postgresql+psycopg2//broken")

	out, err := runHelios(t, dir, env, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "📈 SALES: Sales analysis unavailable.")
	assert.Contains(t, out, "👥 CHURN: Churn analysis unavailable.")

	_, err = runHelios(t, dir, env, "train")
	assert.Error(t, err)
}

// TestDotEnvConfiguresStore reads DATABASE_URL from .env in the working directory.
func TestDotEnvConfiguresStore(t *testing.T) {
	dir := t.TempDir()
	dbURL := "sqlite:///" + filepath.Join(dir, "dotenv.db")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL="+dbURL+"\n"), 0o600))

	out, err := runHelios(t, dir, heliosEnv(""), "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Store Backend: sqlite")
}

// TestModelShowFailures exits non-zero for a missing or corrupt bundle.
func TestModelShowFailures(t *testing.T) {
	dir := t.TempDir()
	env := heliosEnv("")

	_, err := runHelios(t, dir, env, "model", "show", "--artifact-dir", filepath.Join(dir, "missing"))
	assert.Error(t, err)

	corrupt := filepath.Join(dir, "corrupt")
	require.NoError(t, os.MkdirAll(filepath.Join(corrupt, "churn_model"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(corrupt, "churn_model", "manifest.yaml"), []byte("not: [valid"), 0o600))
	_, err = runHelios(t, dir, env, "model", "show", "--artifact-dir", corrupt)
	assert.Error(t, err)
}

// TestTrainWithoutStore fails fast when DATABASE_URL is missing.
func TestTrainWithoutStore(t *testing.T) {
	_, err := runHelios(t, t.TempDir(), heliosEnv(""), "train")
	assert.Error(t, err)
}
