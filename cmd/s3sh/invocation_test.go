package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/s3sh/result"
)

func TestParseInvocation(t *testing.T) {
	positional, keywords := parseInvocation([]string{
		"photos",
		"key=summer/01.jpg",
		"trailing",
		"version_id=v-123",
	})

	require.Len(t, positional, 2)
	assert.Equal(t, "photos", positional[0].Value)
	assert.Equal(t, "trailing", positional[1].Value)

	require.Len(t, keywords, 2)
	assert.Equal(t, "key", keywords[0].Name)
	assert.Equal(t, "summer/01.jpg", keywords[0].Arg.Value)
	assert.Equal(t, "version_id", keywords[1].Name)
}

func TestParseInvocation_ContextCarriesPosition(t *testing.T) {
	positional, keywords := parseInvocation([]string{"photos", "key=a"})

	assert.Equal(t, `argument 1 ("photos")`, positional[0].Ctx.(argCtx).String())
	assert.Equal(t, `argument 2 ("key=a")`, keywords[0].Arg.Ctx.(argCtx).String())
}

func TestParseInvocation_EdgeTokens(t *testing.T) {
	// A leading '=' is not a keyword; an empty value still binds one.
	positional, keywords := parseInvocation([]string{"=weird", "key="})

	require.Len(t, positional, 1)
	assert.Equal(t, "=weird", positional[0].Value)

	require.Len(t, keywords, 1)
	assert.Equal(t, "key", keywords[0].Name)
	assert.Equal(t, "", keywords[0].Arg.Value)
}

func TestFormatResult_SortedFields(t *testing.T) {
	res := result.Wrap(result.KindBucket, result.Record{
		"Name":    "alpha",
		"_bucket": "ignored-order",
	}, nil)

	assert.Equal(t, "bucket Name=alpha _bucket=ignored-order", formatResult(res))
}
