package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/cda/internal/config"
	"github.com/JonMunkholm/cda/internal/pipeline"
	"github.com/JonMunkholm/cda/internal/workbook/xlsxtest"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	env["LOG_LEVEL"] = "error"
	cfg, err := config.LoadFrom(func(key string) string { return env[key] })
	require.NoError(t, err)
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvertCmd(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	xlsxtest.Write(t, filepath.Join(in, "model-v1.xlsx"), xlsxtest.Model()...)

	stdout, err := run(t, testConfig(t, nil), "convert", "--input", in, "--output", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "converted 1 workbook(s)")

	for _, name := range []string{pipeline.DocumentFile, pipeline.ScriptFile} {
		_, err := os.Stat(filepath.Join(out, "model_v1", name))
		require.NoError(t, err, name)
	}
}

func TestRootDefaultsToConvert(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	xlsxtest.Write(t, filepath.Join(in, "model.xlsx"), xlsxtest.Model()...)

	cfg := testConfig(t, map[string]string{"INPUT_DIR": in, "OUTPUT_DIR": out})
	stdout, err := run(t, cfg)
	require.NoError(t, err)
	require.Contains(t, stdout, "converted 1 workbook(s)")
	require.FileExists(t, filepath.Join(out, "model", pipeline.ScriptFile))
}

func TestConvertCmd_KeepGoing(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	model := xlsxtest.Model()
	xlsxtest.Write(t, filepath.Join(in, "a.xlsx"), model[0])
	xlsxtest.Write(t, filepath.Join(in, "b.xlsx"), model...)

	_, err := run(t, testConfig(t, nil), "convert", "-i", in, "-o", out)
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(out, "b", pipeline.ScriptFile))

	stdout, err := run(t, testConfig(t, nil), "convert", "-i", in, "-o", out, "--keep-going")
	require.Error(t, err)
	require.Contains(t, stdout, filepath.Join(out, "b"))
	require.FileExists(t, filepath.Join(out, "b", pipeline.ScriptFile))
}

func TestApplyCmd_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.xlsx")
	xlsxtest.Write(t, path, xlsxtest.Model()...)

	stdout, err := run(t, testConfig(t, nil), "apply", "--dry-run", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "CREATE TABLE hcp (\n    name VARCHAR(40),")
}

func TestApplyCmd_KeywordsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.xlsx")
	xlsxtest.Write(t, path, xlsxtest.Model()...)

	kwFile := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(kwFile, []byte("sql_keywords:\n  - name\n"), 0o644))

	cfg := testConfig(t, map[string]string{"KEYWORDS_FILE": kwFile})
	stdout, err := run(t, cfg, "apply", "--dry-run", path)
	require.NoError(t, err)
	require.Contains(t, stdout, `    "name" VARCHAR(40),`)

	cfg = testConfig(t, map[string]string{"KEYWORDS_FILE": filepath.Join(dir, "missing.yaml")})
	_, err = run(t, cfg, "apply", "--dry-run", path)
	require.ErrorContains(t, err, "load keywords")
}

func TestApplyCmd_RequiresDatabase(t *testing.T) {
	_, err := run(t, testConfig(t, nil), "apply", "model.xlsx")
	require.True(t, errors.Is(err, config.ErrDatabaseURL), "got %v", err)
}

func TestApplyCmd_Args(t *testing.T) {
	_, err := run(t, testConfig(t, nil), "apply")
	require.Error(t, err)
}
