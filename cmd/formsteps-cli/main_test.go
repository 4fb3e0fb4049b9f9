package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsteps/internal/config"
	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/testsupport"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FORMSTEPS_LOG_LEVEL", "error")
	t.Setenv("FORMSTEPS_DEFINITION", "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeValues(t *testing.T, values map[string]string) string {
	t.Helper()
	raw, err := yaml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func embeddedDefinition(t *testing.T) []byte {
	t.Helper()
	raw, err := fs.ReadFile(definition.EmbeddedFS(), "forms/closed_deal.yaml")
	require.NoError(t, err)
	return raw
}

func TestSummary_Text(t *testing.T) {
	path := writeValues(t, testsupport.ClosedDealValues(testsupport.Business))

	out, _, err := execute(t, "summary", "--values", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Informações de Contato [editar 1]")
	assert.Contains(t, out, "Maria Da Silva")
	assert.Contains(t, out, "12.345.678/0001-95")
}

func TestSummary_HTMLWithVariant(t *testing.T) {
	path := writeValues(t, testsupport.ClosedDealValues(testsupport.Individual))
	target := filepath.Join(t.TempDir(), "summary.html")

	out, _, err := execute(t, "summary", "--values", path, "--variant", "dark", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Summary written to")

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, `data-variant="dark"`)
	assert.Contains(t, html, `data-step="0"`)
	assert.NotContains(t, html, "Razão Social")
}

func TestSummary_IncompleteValues(t *testing.T) {
	values := testsupport.ContactValues(testsupport.Business)
	delete(values, "responsible")
	path := writeValues(t, values)

	_, _, err := execute(t, "summary", "--values", path, "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
	assert.Contains(t, err.Error(), "responsible")
}

func TestSummary_SkipValidation(t *testing.T) {
	path := writeValues(t, testsupport.ContactValues(testsupport.Individual))

	out, _, err := execute(t, "summary", "--values", path, "--format", "text", "--skip-validation")
	require.NoError(t, err)
	assert.Contains(t, out, "Maria Da Silva")
}

func TestSummary_UnknownField(t *testing.T) {
	path := writeValues(t, map[string]string{"nickname": "maria"})

	_, _, err := execute(t, "summary", "--values", path)
	require.ErrorIs(t, err, form.ErrUnknownField)
}

func TestContract_JSON(t *testing.T) {
	out, _, err := execute(t, "contract", "--path", "/hooks/deal")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/hooks/deal")
}

func TestContract_YAML(t *testing.T) {
	out, _, err := execute(t, "contract", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi: 3.0.3")
	assert.Contains(t, out, "/webhook/closed-deal:")
}

func TestContract_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "contract", "--format", "toml")
	require.Error(t, err)
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, embeddedDefinition(t), 0o644))

	out, _, err := execute(t, "lint", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 definition(s) ok")

	bad := filepath.Join(dir, "bad.yaml")
	broken := strings.Replace(string(embeddedDefinition(t)), "format: cpf", "format: passport", 1)
	require.NoError(t, os.WriteFile(bad, []byte(broken), 0o644))

	_, stderr, err := execute(t, "lint", good, bad)
	require.ErrorIs(t, err, errLintFailed)
	assert.Contains(t, stderr, "bad.yaml: steps[0].fields.cpf -> unknown format rule \"passport\"")
	assert.NotContains(t, stderr, "good.yaml")

	_, stderr, err = execute(t, "lint", filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, errLintFailed)
	assert.Contains(t, stderr, "missing.yaml: document ->")
}

func TestSinkRouter(t *testing.T) {
	var stdout bytes.Buffer
	a := &app{
		stdout: &stdout,
		cfg:    config.Config{SinkPath: "/webhook/closed-deal"},
		logger: zap.NewNop(),
	}
	router, pattern, err := a.sinkRouter(true)
	require.NoError(t, err)
	assert.Equal(t, "/webhook/closed-deal", pattern)

	srv := httptest.NewServer(router)
	defer srv.Close()

	body, err := json.Marshal(testsupport.ClosedDealValues(testsupport.Business))
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+pattern, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var receipt map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &receipt))
	payload, ok := receipt["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Maria Da Silva", payload["responsible"])

	resp, err = http.Post(srv.URL+pattern, "application/json", strings.NewReader(`{"cpf":"123"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
