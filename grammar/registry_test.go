package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3sherrors "github.com/kestrel-labs/s3sh/errors"
)

func TestRegister_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing symbol",
			cfg:  Config{Action: "ls"},
		},
		{
			name: "unknown action",
			cfg:  Config{Symbol: "bad", Action: "no-such-action"},
		},
		{
			name: "empty action",
			cfg:  Config{Symbol: "bad2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Register(tt.name, tt.cfg)
			require.Error(t, err)
			assert.True(t, s3sherrors.IsDefinition(err))
		})
	}
}

func TestMustRegister_PanicsOnInvalidDefinition(t *testing.T) {
	assert.Panics(t, func() {
		MustRegister("broken", Config{Action: "ls"})
	})
}

func TestRegister_LastWriterWins(t *testing.T) {
	first, err := Register("rr-one", Config{
		Symbol: "rr",
		Desc:   "first",
		Action: "ls",
	})
	require.NoError(t, err)

	got, ok := Lookup("rr")
	require.True(t, ok)
	assert.Same(t, first, got)

	second, err := Register("rr-two", Config{
		Symbol: "rr",
		Desc:   "second",
		Action: "lsv",
	})
	require.NoError(t, err)

	got, ok = Lookup("rr")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, "second", got.Desc())
}

func TestLookup_UnknownSymbol(t *testing.T) {
	_, ok := Lookup("definitely-not-registered")
	assert.False(t, ok)
}

func TestSymbols_SortedAndComplete(t *testing.T) {
	MustRegister("sym-a", Config{Symbol: "zzz", Action: "ls"})
	MustRegister("sym-b", Config{Symbol: "aaa", Action: "ls"})

	symbols := Symbols()
	assert.IsNonDecreasing(t, symbols)
	assert.Contains(t, symbols, "zzz")
	assert.Contains(t, symbols, "aaa")
}

func TestLoadDefaults(t *testing.T) {
	LoadDefaults()

	for _, symbol := range []string{"ls", "lsv", "lsr", "head", "get", "put", "cp"} {
		def, ok := Lookup(symbol)
		require.True(t, ok, "verb %q not registered", symbol)
		assert.Equal(t, symbol, def.Symbol())
		assert.NotEmpty(t, def.Desc())
		assert.NotNil(t, def.Action())
	}

	ls, _ := Lookup("ls")
	assert.Equal(t, []string{"bucket"}, ls.Needs())
	assert.Equal(t, []string{"bucket", "key"}, ls.Wants())
	assert.Equal(t, []string{"bucket"}, ls.PositionalOrder())

	put, _ := Lookup("put")
	assert.Equal(t, []string{"file", "bucket", "key"}, put.Needs())

	cp, _ := Lookup("cp")
	assert.Equal(t, []string{"bucket", "key", "target_bucket", "target_key"}, cp.PositionalOrder())
}
