package result

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := Record{"Name": "alpha"}
	res := Wrap(KindBucket, rec, "ctx")

	assert.Equal(t, KindBucket, res.Kind)
	assert.Equal(t, rec, res.Record)
	assert.Equal(t, "ctx", res.Ctx)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "bucket", KindBucket.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "object-version", KindObjectVersion.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestStream_Of(t *testing.T) {
	stream := Of(
		Wrap(KindBucket, Record{"Name": "a"}, nil),
		Wrap(KindBucket, Record{"Name": "b"}, nil),
	)

	first, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", first.Record["Name"])

	second, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", second.Record["Name"])

	_, err = stream.Next(context.Background())
	assert.Equal(t, io.EOF, err)

	// Exhausted streams stay exhausted.
	_, err = stream.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestStream_Empty(t *testing.T) {
	_, err := Empty().Next(context.Background())
	assert.Equal(t, io.EOF, err)

	results, err := Empty().Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStream_Drain(t *testing.T) {
	stream := Of(
		Wrap(KindObject, Record{"Key": "a"}, nil),
		Wrap(KindObject, Record{"Key": "b"}, nil),
	)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[1].Record["Key"])
}

func TestStream_ErrorEndsStream(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	stream := NewStream(func(ctx context.Context) (Result, error) {
		calls++
		return Result{}, boom
	})

	_, err := stream.Next(context.Background())
	assert.Equal(t, boom, err)

	// The pull function is not called again after a failure.
	_, err = stream.Next(context.Background())
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, calls)
}

func TestStream_PullsLazily(t *testing.T) {
	pulled := 0
	stream := NewStream(func(ctx context.Context) (Result, error) {
		pulled++
		return Wrap(KindObject, Record{}, nil), nil
	})

	assert.Equal(t, 0, pulled)
	_, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pulled)
}
