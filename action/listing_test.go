package action

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3sherrors "github.com/kestrel-labs/s3sh/errors"
	"github.com/kestrel-labs/s3sh/internal/testutil"
	"github.com/kestrel-labs/s3sh/result"
)

func invocation(params Params) *Invocation {
	return &Invocation{Params: params, Ctx: "test-invocation"}
}

func TestListAction_BucketScoped(t *testing.T) {
	mock := &testutil.MockS3Client{
		ListBucketsFunc: func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return testutil.BucketListOutput("alpha", "beta"), nil
		},
	}

	stream, err := (&ListAction{}).Invoke(context.Background(), mock, invocation(Params{}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, result.KindBucket, results[0].Kind)
	assert.Equal(t, "alpha", results[0].Record["Name"])
	assert.Equal(t, "beta", results[1].Record["Name"])
	assert.Equal(t, "test-invocation", results[0].Ctx)
}

func TestListAction_ObjectScopedAcrossPages(t *testing.T) {
	calls := 0
	mock := &testutil.MockS3Client{
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			calls++
			assert.Equal(t, "photos", aws.ToString(params.Bucket))
			switch calls {
			case 1:
				assert.Nil(t, params.ContinuationToken)
				return testutil.ObjectPageOutput([]string{"a.jpg", "b.jpg"}, "token-1"), nil
			default:
				assert.Equal(t, "token-1", aws.ToString(params.ContinuationToken))
				return testutil.ObjectPageOutput([]string{"c.jpg"}, ""), nil
			}
		},
	}

	stream, err := (&ListAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "photos"}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, calls)

	for i, key := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		assert.Equal(t, result.KindObject, results[i].Kind)
		assert.Equal(t, key, results[i].Record["Key"])
		assert.Equal(t, "photos", results[i].Record[result.BucketField])
	}
}

func TestListAction_NoReadAhead(t *testing.T) {
	calls := 0
	mock := &testutil.MockS3Client{
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			calls++
			return testutil.ObjectPageOutput([]string{"a.jpg", "b.jpg"}, "token-1"), nil
		},
	}

	stream, err := (&ListAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "photos"}))
	require.NoError(t, err)

	// Consuming exactly the first page's records must not fetch page two.
	for i := 0; i < 2; i++ {
		_, err := stream.Next(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestListAction_EmptyBucketScopedListing(t *testing.T) {
	mock := &testutil.MockS3Client{
		ListBucketsFunc: func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return testutil.BucketListOutput(), nil
		},
	}

	stream, err := (&ListAction{}).Invoke(context.Background(), mock, invocation(Params{}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListVersionsAction_RequiresBucket(t *testing.T) {
	_, err := (&ListVersionsAction{}).Invoke(context.Background(), &testutil.MockS3Client{}, invocation(Params{}))
	require.Error(t, err)
	assert.True(t, s3sherrors.IsMissingKeyword(err))
}

func TestListVersionsAction_VersionsWithoutDeleteMarkers(t *testing.T) {
	mock := &testutil.MockS3Client{
		ListObjectVersionsFunc: func(ctx context.Context, params *s3.ListObjectVersionsInput, optFns ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error) {
			return testutil.VersionPageOutput([]string{"a.txt", "b.txt"}, nil, ""), nil
		},
	}

	stream, err := (&ListVersionsAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "docs"}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, key := range []string{"a.txt", "b.txt"} {
		assert.Equal(t, result.KindObjectVersion, results[i].Kind)
		assert.Equal(t, key, results[i].Record["Key"])
		assert.Equal(t, "docs", results[i].Record[result.BucketField])
	}
}

func TestListVersionsAction_VersionsThenDeleteMarkers(t *testing.T) {
	mock := &testutil.MockS3Client{
		ListObjectVersionsFunc: func(ctx context.Context, params *s3.ListObjectVersionsInput, optFns ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error) {
			return testutil.VersionPageOutput([]string{"a.txt"}, []string{"gone.txt"}, ""), nil
		},
	}

	stream, err := (&ListVersionsAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "docs"}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a.txt", results[0].Record["Key"])
	assert.Equal(t, "gone.txt", results[1].Record["Key"])
	assert.Equal(t, true, results[1].Record["DeleteMarker"])
}

func TestListReplicatedAction_BucketScoped(t *testing.T) {
	sideQueries := 0
	mock := &testutil.MockS3Client{
		ListBucketsFunc: func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return testutil.BucketListOutput("plain", "mirrored", "scratch"), nil
		},
		GetBucketReplicationFunc: func(ctx context.Context, params *s3.GetBucketReplicationInput, optFns ...func(*s3.Options)) (*s3.GetBucketReplicationOutput, error) {
			sideQueries++
			if aws.ToString(params.Bucket) == "mirrored" {
				return testutil.ReplicationOutput("mirrored-backup"), nil
			}
			return nil, testutil.ErrNoReplication
		},
	}

	stream, err := (&ListReplicatedAction{}).Invoke(context.Background(), mock, invocation(Params{}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, result.KindBucket, results[0].Kind)
	assert.Equal(t, "mirrored", results[0].Record["Name"])
	// One side query per bucket, no caching.
	assert.Equal(t, 3, sideQueries)
}

func TestListReplicatedAction_ObjectScopedShortCircuits(t *testing.T) {
	listed := false
	mock := &testutil.MockS3Client{
		GetBucketReplicationFunc: func(ctx context.Context, params *s3.GetBucketReplicationInput, optFns ...func(*s3.Options)) (*s3.GetBucketReplicationOutput, error) {
			return nil, testutil.ErrNoReplication
		},
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			listed = true
			return testutil.ObjectPageOutput([]string{"a"}, ""), nil
		},
	}

	stream, err := (&ListReplicatedAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "plain"}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, listed, "object listing must not run without a replication configuration")
}

func TestListReplicatedAction_ObjectScopedListsWhenReplicated(t *testing.T) {
	mock := &testutil.MockS3Client{
		GetBucketReplicationFunc: func(ctx context.Context, params *s3.GetBucketReplicationInput, optFns ...func(*s3.Options)) (*s3.GetBucketReplicationOutput, error) {
			return testutil.ReplicationOutput("backup"), nil
		},
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			return testutil.ObjectPageOutput([]string{"a.txt", "b.txt"}, ""), nil
		},
	}

	stream, err := (&ListReplicatedAction{}).Invoke(context.Background(), mock, invocation(Params{ParamBucket: "mirrored"}))
	require.NoError(t, err)

	results, err := stream.Drain(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, result.KindObject, results[0].Kind)
	assert.Equal(t, "mirrored", results[0].Record[result.BucketField])
}

func TestShapeOf(t *testing.T) {
	assert.Equal(t, ShapeBucket, ShapeOf(Params{}))
	assert.Equal(t, ShapeBucket, ShapeOf(Params{ParamBucket: ""}))
	assert.Equal(t, ShapeObject, ShapeOf(Params{ParamBucket: "photos"}))
}

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"ls", "lsv", "lsr", "head", "get", "put", "cp"} {
		require.NotNil(t, Lookup(name), "action %q not registered", name)
		assert.Equal(t, name, Lookup(name).Name())
	}
	assert.Nil(t, Lookup("nope"))
}
