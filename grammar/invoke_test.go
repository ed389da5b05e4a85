package grammar

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-labs/s3sh/internal/testutil"
	"github.com/kestrel-labs/s3sh/result"
)

// These tests run the whole pipeline: bind a verb, dispatch it, and drain
// the lazy result stream against a mocked backend.

func TestInvoke_ListWithoutBucketYieldsBuckets(t *testing.T) {
	LoadDefaults()
	def, ok := Lookup("ls")
	require.True(t, ok)

	mock := &testutil.MockS3Client{
		ListBucketsFunc: func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return testutil.BucketListOutput("one", "two", "three"), nil
		},
	}

	verb, err := def.Bind(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"bucket"}, verb.Missing())

	stream, err := verb.Invoke(context.Background(), mock)
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, result.KindBucket, res.Kind)
	}
}

func TestInvoke_ListWithBucketYieldsTaggedObjects(t *testing.T) {
	LoadDefaults()
	def, ok := Lookup("ls")
	require.True(t, ok)

	mock := &testutil.MockS3Client{
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "photos", aws.ToString(params.Bucket))
			return testutil.ObjectPageOutput([]string{"a.jpg", "b.jpg"}, ""), nil
		},
	}

	verb, err := def.Bind(nil, []Arg{{Value: "photos"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, verb.Missing())

	stream, err := verb.Invoke(context.Background(), mock)
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, result.KindObject, res.Kind)
		assert.Equal(t, "photos", res.Record[result.BucketField])
	}
}
