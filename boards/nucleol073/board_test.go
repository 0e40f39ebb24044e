package nucleol073

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clocktree-go/clock"
	"clocktree-go/clockcfg"
	"clocktree-go/clockgen"
	"clocktree-go/freq"
	"clocktree-go/rcc"
)

func TestGeneratedFileIsCurrent(t *testing.T) {
	cfg, err := clockcfg.LoadFile("clock.yaml")
	require.NoError(t, err)
	want, err := clockgen.Generate(cfg, "clock.yaml")
	require.NoError(t, err)

	got, err := os.ReadFile("clock_gen.go")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got), "run go generate")
}

func TestInit(t *testing.T) {
	sim := rcc.NewSim()
	require.NoError(t, Init(sim.Fields()))
	assert.Empty(t, sim.Violations)
	assert.Equal(t, uint32(clock.SourcePLL), sim.Fields().SWS.Read())
	assert.Equal(t, uint32(Latency), sim.Fields().LATENCY.Read())

	p := clock.MustBuild(Tree)
	assert.Equal(t, uint64(SysClkNum), p.SysClk().Num())
	assert.Equal(t, uint64(SysClkDen), p.SysClk().Den())
}

func TestTreeMatchesInputs(t *testing.T) {
	pll, ok := Tree.SysClk.Source.(clock.PLL)
	require.True(t, ok)
	assert.Equal(t, clock.PLLMul(PLLMul), pll.Mul)
	assert.Equal(t, clock.PLLDiv(PLLDiv), pll.Div)
	assert.Zero(t, pll.Source.Frequency().Cmp(freq.New(InputNum, InputDen)))

	in := freq.New(InputNum, InputDen)
	assert.True(t, in.Scale(uint64(PLLMul), uint64(PLLDiv)).LessEqual(clock.MaxSysClk))
}
