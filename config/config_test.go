package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/christofides/config"
	"github.com/katalvlaran/christofides/tsp"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", config.WithEnvFiles(), config.WithLookup(noEnv))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "christofides.yaml", `
log:
  level: debug
  format: json
solver:
  start: 2
  matching: exact
  two_opt: true
  two_opt_max_iters: 50
fuel:
  consumption_l100: 6
  price_per_litre: 2.5
history:
  enabled: true
  path: /tmp/runs.db
timeout: 3s
`)
	cfg, err := config.Load(path, config.WithEnvFiles(), config.WithLookup(noEnv))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, config.SolverConfig{Start: 2, Matching: "exact", TwoOpt: true, TwoOptMaxIters: 50}, cfg.Solver)
	assert.Equal(t, 6.0, cfg.Fuel.ConsumptionL100)
	assert.Equal(t, 2.5, cfg.Fuel.PricePerLitre)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/runs.db", cfg.History.Path)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "c.yaml", "solver:\n  matching: exact\n")
	dotenv := writeFile(t, ".env", "CHRISTOFIDES_MATCHING=greedy\nCHRISTOFIDES_LOG_LEVEL=warn\n")

	cfg, err := config.Load(path,
		config.WithEnvFiles(dotenv),
		config.WithLookup(envMap(map[string]string{
			"CHRISTOFIDES_LOG_LEVEL":  "error",
			"CHRISTOFIDES_TWO_OPT":    "true",
			"CHRISTOFIDES_TIMEOUT":    "250ms",
			"CHRISTOFIDES_FUEL_PRICE": "3",
		})),
	)
	require.NoError(t, err)

	// dotenv beats YAML, process env beats dotenv.
	assert.Equal(t, "greedy", cfg.Solver.Matching)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Solver.TwoOpt)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 3.0, cfg.Fuel.PricePerLitre)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		yaml string
		env  map[string]string
	}{
		"unknown key":     {yaml: "colour: red\n"},
		"bad level":       {yaml: "log:\n  level: loud\n"},
		"bad format":      {yaml: "log:\n  format: xml\n"},
		"bad matching":    {yaml: "solver:\n  matching: blossom\n"},
		"negative start":  {yaml: "solver:\n  start: -1\n"},
		"zero fuel":       {yaml: "fuel:\n  consumption_l100: 0\n"},
		"history no path": {yaml: "history:\n  enabled: true\n  path: \"\"\n"},
		"env not int":     {env: map[string]string{"CHRISTOFIDES_START": "two"}},
		"env not bool":    {env: map[string]string{"CHRISTOFIDES_TWO_OPT": "maybe"}},
		"env not dur":     {env: map[string]string{"CHRISTOFIDES_TIMEOUT": "soon"}},
		"env not float":   {env: map[string]string{"CHRISTOFIDES_FUEL_PRICE": "cheap"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := ""
			if tc.yaml != "" {
				path = writeFile(t, "c.yaml", tc.yaml)
			}
			_, err := config.Load(path, config.WithEnvFiles(), config.WithLookup(envMap(tc.env)))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), config.WithEnvFiles(), config.WithLookup(noEnv))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load("", config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")), config.WithLookup(noEnv))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfig_SolveOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Solver = config.SolverConfig{Start: 1, Matching: "exact", TwoOpt: true, TwoOptMaxIters: 7}

	opts, err := cfg.SolveOptions()
	require.NoError(t, err)

	o := tsp.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, 1, o.Start)
	assert.Equal(t, tsp.MatchExact, o.Matching)
	assert.True(t, o.TwoOpt)
	assert.Equal(t, 7, o.TwoOptMaxIters)
}

func TestConfig_NewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log = config.LogConfig{Level: "debug", Format: "json"}

	var buf bytes.Buffer
	l, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("k", "v").Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
