package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clocktree-go/freq"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixture(name string) string { return filepath.Join("testdata", name) }

func decode(t *testing.T, out string) (CLIResponse, map[string]any) {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

func TestValidateValid(t *testing.T) {
	out, err := run(t, "validate", fixture("good.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ nucleo: SYSCLK 32000000Hz, 1 wait state(s)")
}

func TestValidateValidJSON(t *testing.T) {
	out, err := run(t, "--format", "json", "validate", fixture("good.yaml"))
	require.NoError(t, err)
	resp, data := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "32000000Hz", data["sysclk"])
}

func TestValidateReportsEveryViolation(t *testing.T) {
	out, err := run(t, "validate", fixture("bad.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "3 violation(s)")
	assert.Contains(t, out, "invalid PLL multiplier")
	assert.Contains(t, out, "invalid PLL divider")
	assert.Contains(t, out, "invalid APB prescaler")
	assert.Equal(t, 3, strings.Count(out, "[invalid_params]"))
}

func TestValidateViolationsJSON(t *testing.T) {
	out, err := run(t, "--format", "json", "validate", fixture("bad.yaml"))
	require.Error(t, err)
	resp, data := decode(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid_params", resp.Error.Code)
	vs, ok := data["violations"].([]any)
	require.True(t, ok)
	assert.Len(t, vs, 3)
}

func TestValidateMissingFile(t *testing.T) {
	_, err := run(t, "validate", fixture("nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "validate", fixture("good.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPlanWrites(t *testing.T) {
	out, err := run(t, "plan", "--writes", fixture("good.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "SYSCLK  32000000Hz")
	assert.Contains(t, out, "   1 write PLLON=0\n")
	assert.Contains(t, out, "   9 write SW=3\n")
	assert.NotContains(t, out, "read")
	assert.NotContains(t, out, "!")
}

func TestPlanJSON(t *testing.T) {
	out, err := run(t, "--format", "json", "plan", fixture("good.yaml"))
	require.NoError(t, err)
	resp, data := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, float64(1), data["latency"])
	steps, ok := data["steps"].([]any)
	require.True(t, ok)
	assert.Equal(t, "clock tree active", steps[len(steps)-1])
	assert.Nil(t, data["violations"])
}

func TestPlanStalledFlag(t *testing.T) {
	out, err := run(t, "plan", "--stall", "PLLRDY", fixture("stall.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [timeout]: pll.lock: timeout: PLLRDY did not settle")
	assert.Equal(t, 9, strings.Count(out, "read  PLLRDY=0"))
}

func TestGenerateToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clock_gen.go")
	_, err := run(t, "generate", fixture("good.yaml"), "-o", dst)
	require.NoError(t, err)

	src, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(src), "// Code generated by clockgen from good.yaml. DO NOT EDIT.\n\npackage nucleo\n"))
	assert.Contains(t, string(src), "clock.PLLMul4")
}

func TestGenerateStdout(t *testing.T) {
	out, err := run(t, "generate", fixture("good.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "func Init(f rcc.Fields) error {")
}

func TestGenerateRefusesIllegal(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clock_gen.go")
	out, err := run(t, "generate", fixture("bad.yaml"), "-o", dst)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "violation(s)")
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestKHz(t *testing.T) {
	assert.Equal(t, "32000 kHz", khz(freq.MHz(32)))
	assert.Equal(t, "~21333 kHz", khz(freq.New(64_000_000, 3)))
	assert.Equal(t, "~66 kHz", khz(freq.Of(65_536)))
}
