package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"bluediscs/src/config"
	"bluediscs/src/puzzle/discs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "bluediscs.yaml")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCmd(t *testing.T) {
	out, err := execute(t, "eval", "15", "21")
	require.NoError(t, err)
	require.Contains(t, out, "probability: 1/2")
	require.Contains(t, out, "target:      matched")

	out, err = execute(t, "eval", "14", "21")
	require.NoError(t, err)
	require.Contains(t, out, "probability: 13/30")
	require.Contains(t, out, "target:      below")
}

func TestEvalCmdErrors(t *testing.T) {
	_, err := execute(t, "eval", "22", "21")
	require.ErrorIs(t, err, discs.ErrInvalidCounts)

	_, err = execute(t, "eval", "x", "21")
	require.ErrorContains(t, err, "invalid blue count")

	_, err = execute(t, "eval", "15")
	require.Error(t, err)
}

func TestEstimateCmd(t *testing.T) {
	out, err := execute(t, "estimate")
	require.NoError(t, err)
	require.Contains(t, out, "total:       1000000000001")
	require.Contains(t, out, "ratio:       5/7")
	require.Contains(t, out, "blue:        714285714286")
	require.Contains(t, out, "target:      above")

	out, err = execute(t, "estimate", "--total", "21")
	require.NoError(t, err)
	require.Contains(t, out, "blue:        15")
	require.Contains(t, out, "target:      matched")
}

func TestSearchCmd(t *testing.T) {
	out, err := execute(t, "search", "--min", "5", "--max", "1000", "--workers", "2", "--chunk", "50")
	require.NoError(t, err)
	require.Contains(t, out, "blue=15 total=21")
	require.Contains(t, out, "probability: 1/2")

	_, err = execute(t, "search", "--min", "121", "--max", "600")
	require.ErrorIs(t, err, discs.ErrNotFound)
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bluediscs.yaml")
	cfg := config.DefaultConfig()
	cfg.Search.Workers = 0
	require.NoError(t, cfg.Save(cfgPath))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "eval", "15", "21"})
	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrInvalidWorkers)
	require.ErrorContains(t, err, "invalid config")
}

func TestConfigRejectsZeroTarget(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bluediscs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("target:\n  numerator: 0\n  denominator: 5\n"), 0644))

	for _, args := range [][]string{
		{"eval", "1", "2"},
		{"search", "--min", "2", "--max", "100"},
	} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		require.ErrorIs(t, cmd.Execute(), config.ErrTargetOutOfRange, "%v", args)
	}
}

func TestConfigRejectsWideEstimateRatio(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bluediscs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("estimate:\n  numerator: 3\n  denominator: 1\n"), 0644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "estimate", "--total", "9223372036854775808"})
	require.ErrorIs(t, cmd.Execute(), config.ErrRatioOutOfRange)
}

func TestConfigFileTarget(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bluediscs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("target:\n  numerator: 1\n  denominator: 3\n"), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "search", "--min", "4", "--max", "100"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "blue=6 total=10")
}

func TestBuildLogger(t *testing.T) {
	logger, err := buildLogger(config.LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = buildLogger(config.LoggingConfig{Level: "warn", Development: true}, true)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = buildLogger(config.LoggingConfig{Level: "loud"}, false)
	require.Error(t, err)
}
