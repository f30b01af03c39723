package paste

import (
	"strings"
	"testing"

	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T, mutate func(*config.ScanConfig)) *Dispatcher {
	t.Helper()
	cfg := config.NewDefaultScanConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	d, err := NewDispatcher(pathment.NewEngine(zerolog.Nop()), cfg, zerolog.Nop())
	require.NoError(t, err)
	return d
}

func TestDispatch_ShortTextIsSingle(t *testing.T) {
	d := newDispatcher(t, nil)

	res := d.Dispatch("user@example.com")
	assert.Equal(t, ModeSingle, res.Mode)
	require.Len(t, res.Pathments, 1)
	assert.Equal(t, pathment.Email, res.Pathments[0].Type())
}

func TestDispatch_UnclassifiableShortText(t *testing.T) {
	d := newDispatcher(t, nil)

	res := d.Dispatch("hello world")
	require.Len(t, res.Pathments, 1)
	assert.Equal(t, pathment.Unspecified, res.Pathments[0].Type())
}

func TestDispatch_NewlineForcesExtraction(t *testing.T) {
	d := newDispatcher(t, nil)

	res := d.Dispatch("https://example.com\nuser@example.com")
	assert.Equal(t, ModeExtraction, res.Mode)
	require.Len(t, res.Pathments, 2)
	assert.Equal(t, pathment.URLAddress, res.Pathments[0].Type())
	assert.Equal(t, pathment.Email, res.Pathments[1].Type())
}

func TestDispatch_LengthThreshold(t *testing.T) {
	d := newDispatcher(t, func(c *config.ScanConfig) { c.MultilineThreshold = 20 })

	short := "https://example.com"
	long := "see https://example.com and " + strings.Repeat("x", 10)
	assert.False(t, d.IsMultiline(short))
	assert.True(t, d.IsMultiline(long))

	// Characters, not bytes, are counted.
	assert.False(t, d.IsMultiline(strings.Repeat("ü", 20)))
	assert.True(t, d.IsMultiline(strings.Repeat("ü", 21)))
}

func TestDispatch_InterestingToggle(t *testing.T) {
	text := "install setup.py\nthen visit https://example.com"

	with := newDispatcher(t, nil).Dispatch(text)
	assert.NotEmpty(t, with.Interesting)

	without := newDispatcher(t, func(c *config.ScanConfig) { c.IncludeInteresting = false }).Dispatch(text)
	assert.Empty(t, without.Interesting)
}

func TestDispatch_CachedResultsAreCopies(t *testing.T) {
	d := newDispatcher(t, nil)

	first := d.Dispatch("https://example.com")
	first.Pathments[0].SetTitle("changed")

	second := d.Dispatch("https://example.com")
	assert.NotEqual(t, "changed", second.Pathments[0].Title())
	assert.True(t, first.Pathments[0].Equal(second.Pathments[0]))
}

func TestDispatch_CacheDisabled(t *testing.T) {
	d := newDispatcher(t, func(c *config.ScanConfig) { c.CacheSize = 0 })
	assert.Nil(t, d.cache)

	res := d.Dispatch("192.168.0.1")
	require.Len(t, res.Pathments, 1)
	assert.Equal(t, pathment.IPAddress, res.Pathments[0].Type())
	d.Purge()
}

func TestNewDispatcher_NilEngine(t *testing.T) {
	_, err := NewDispatcher(nil, config.NewDefaultScanConfig(), zerolog.Nop())
	assert.Error(t, err)
}
