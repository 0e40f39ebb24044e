package clockcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clocktree-go/clock"
	"clocktree-go/freq"
)

func load(t *testing.T, doc string) (*Config, error) {
	t.Helper()
	return Load(strings.NewReader(doc))
}

func TestLoadFilePLL(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "pll32.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "pll32", c.Name)

	tree, err := c.Tree()
	require.NoError(t, err)
	p, err := clock.Build(tree)
	require.NoError(t, err)
	assert.Zero(t, p.SysClk().Cmp(freq.MHz(32)))
	assert.Zero(t, p.PCLK1().Cmp(freq.MHz(16)))
	assert.Equal(t, clock.DefaultPollLimit, p.PollLimit())
}

func TestLoadDefaults(t *testing.T) {
	c, err := load(t, "name: x\nsysclk: {source: msi}\n")
	require.NoError(t, err)
	assert.Equal(t, DefaultPackage, c.Package)

	tree, err := c.Tree()
	require.NoError(t, err)
	assert.Equal(t, clock.MSI{Range: clock.MSIRange5}, tree.SysClk.Source)
	assert.Zero(t, tree.AHB)

	c, err = load(t, "name: x\nsysclk: {source: msi}\nmsi: {range: 0}\n")
	require.NoError(t, err)
	tree, err = c.Tree()
	require.NoError(t, err)
	assert.Equal(t, clock.MSI{Range: clock.MSIRange0}, tree.SysClk.Source)
}

func TestLoadHSE(t *testing.T) {
	c, err := load(t, `
name: hse
sysclk: {source: pll}
hse: {hz: 8000000}
pll: {source: hse, mul: 12, div: 3}
`)
	require.NoError(t, err)
	tree, err := c.Tree()
	require.NoError(t, err)
	pll, ok := tree.SysClk.Source.(clock.PLL)
	require.True(t, ok)
	assert.Equal(t, clock.HSE{Hz: freq.MHz(8)}, pll.Source)
	assert.Equal(t, clock.PLLMul12, pll.Mul)
	assert.Equal(t, clock.PLLDiv3, pll.Div)
}

func TestPollLimit(t *testing.T) {
	c, err := load(t, "name: x\nsysclk: {source: hsi16}\npoll_limit: -1\n")
	require.NoError(t, err)
	tree, err := c.Tree()
	require.NoError(t, err)
	assert.Equal(t, clock.PollForever, tree.PollLimit)

	c, err = load(t, "name: x\nsysclk: {source: hsi16}\npoll_limit: 100\n")
	require.NoError(t, err)
	tree, err = c.Tree()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), tree.PollLimit)

	_, err = load(t, "name: x\nsysclk: {source: hsi16}\npoll_limit: -2\n")
	assert.ErrorIs(t, err, ErrSchema)
}

func TestSchemaErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"empty":          {"", "empty document"},
		"unknown key":    {"name: x\nsysclk: {source: hsi16}\nlse: {}\n", "lse"},
		"no name":        {"sysclk: {source: hsi16}\n", "Config.Name: required"},
		"no source":      {"name: x\n", "Config.SysClk.Source: required"},
		"bad source":     {"name: x\nsysclk: {source: lse}\n", "Config.SysClk.Source: oneof"},
		"bad pll source": {"name: x\nsysclk: {source: pll}\npll: {source: msi, mul: 4, div: 2}\n", "Config.PLL.Source: oneof"},
		"hse hz":         {"name: x\nsysclk: {source: hse}\nhse: {bypass: true}\n", "Config.HSE.Hz: required"},
		"package":        {"name: x\npackage: 9board\nsysclk: {source: hsi16}\n", "Config.Package: goident"},
		"malformed":      {"name: [\n", "yaml"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, c.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestMissingSections(t *testing.T) {
	for _, doc := range []string{
		"name: x\nsysclk: {source: pll}\n",
		"name: x\nsysclk: {source: hse}\n",
		"name: x\nsysclk: {source: pll}\npll: {source: hse, mul: 4, div: 2}\n",
	} {
		c, err := load(t, doc)
		require.NoError(t, err)
		_, err = c.Tree()
		assert.ErrorIs(t, err, ErrMissing, doc)
	}
}

// Factor legality is left to clock.Build.
func TestIllegalFactorsReachBuild(t *testing.T) {
	c, err := load(t, "name: x\nsysclk: {source: pll}\npll: {source: hsi16, mul: 5, div: 1}\n")
	require.NoError(t, err)
	tree, err := c.Tree()
	require.NoError(t, err)
	_, err = clock.Build(tree)
	assert.ErrorIs(t, err, clock.ErrInvalidPLLMul)
	assert.ErrorIs(t, err, clock.ErrInvalidPLLDiv)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), path)
}
