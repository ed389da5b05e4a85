package testutil

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// FixedTime is the deterministic timestamp fixtures are stamped with.
var FixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// BucketListOutput builds a ListBuckets response with the given bucket names.
func BucketListOutput(names ...string) *s3.ListBucketsOutput {
	buckets := make([]types.Bucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, types.Bucket{
			Name:         aws.String(name),
			CreationDate: aws.Time(FixedTime),
		})
	}
	return &s3.ListBucketsOutput{Buckets: buckets}
}

// ObjectPageOutput builds one ListObjectsV2 page with the given keys.
// nextToken marks the page truncated with a continuation token.
func ObjectPageOutput(keys []string, nextToken string) *s3.ListObjectsV2Output {
	contents := make([]types.Object, 0, len(keys))
	for _, key := range keys {
		contents = append(contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(key))),
			LastModified: aws.Time(FixedTime),
			ETag:         aws.String(`"etag-` + key + `"`),
			StorageClass: types.ObjectStorageClassStandard,
		})
	}
	out := &s3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(nextToken != ""),
	}
	if nextToken != "" {
		out.NextContinuationToken = aws.String(nextToken)
	}
	return out
}

// VersionPageOutput builds one ListObjectVersions page. markerKeys become
// delete markers; nextMarker marks the page truncated.
func VersionPageOutput(versionKeys, markerKeys []string, nextMarker string) *s3.ListObjectVersionsOutput {
	versions := make([]types.ObjectVersion, 0, len(versionKeys))
	for i, key := range versionKeys {
		versions = append(versions, types.ObjectVersion{
			Key:          aws.String(key),
			VersionId:    aws.String("v1"),
			IsLatest:     aws.Bool(i == 0),
			Size:         aws.Int64(int64(len(key))),
			LastModified: aws.Time(FixedTime),
		})
	}
	markers := make([]types.DeleteMarkerEntry, 0, len(markerKeys))
	for _, key := range markerKeys {
		markers = append(markers, types.DeleteMarkerEntry{
			Key:          aws.String(key),
			VersionId:    aws.String("dm1"),
			IsLatest:     aws.Bool(true),
			LastModified: aws.Time(FixedTime),
		})
	}
	out := &s3.ListObjectVersionsOutput{
		Versions:      versions,
		DeleteMarkers: markers,
		IsTruncated:   aws.Bool(nextMarker != ""),
	}
	if nextMarker != "" {
		out.NextKeyMarker = aws.String(nextMarker)
	}
	return out
}

// ReplicationOutput builds a GetBucketReplication response with one rule
// replicating to destBucket.
func ReplicationOutput(destBucket string) *s3.GetBucketReplicationOutput {
	return &s3.GetBucketReplicationOutput{
		ReplicationConfiguration: &types.ReplicationConfiguration{
			Role: aws.String("arn:aws:iam::123456789012:role/replication"),
			Rules: []types.ReplicationRule{
				{
					Status: types.ReplicationRuleStatusEnabled,
					Destination: &types.Destination{
						Bucket: aws.String("arn:aws:s3:::" + destBucket),
					},
				},
			},
		},
	}
}

// ErrNoReplication is the API error S3 reports for a bucket without a
// replication configuration.
var ErrNoReplication = &smithy.GenericAPIError{
	Code:    "ReplicationConfigurationNotFoundError",
	Message: "The replication configuration was not found",
}
