package s3api

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/kestrel-labs/s3sh/result"
)

// Page is one unit of a paginated backend response, normalized to generic
// records. A page may carry zero or more of the record-bearing keys; an
// absent key is an empty slice, never an error.
type Page struct {
	Buckets       []result.Record
	Contents      []result.Record
	Versions      []result.Record
	DeleteMarkers []result.Record
}

// Pages is the pull-based page sequence every backend listing call is
// normalized to. The contract mirrors the AWS SDK v2 paginators:
// HasMorePages reports whether NextPage may be called again, and NextPage
// retrieves exactly one page. No page is fetched ahead of demand, so a
// consumer that stops iterating never triggers further backend calls.
type Pages interface {
	HasMorePages() bool
	NextPage(ctx context.Context) (Page, error)
}

// BucketPages adapts the single-response ListBuckets call into the Pages
// contract: one page, fetched on the first NextPage.
func BucketPages(api S3API) Pages {
	return &bucketPages{api: api}
}

type bucketPages struct {
	api  S3API
	done bool
}

func (p *bucketPages) HasMorePages() bool { return !p.done }

func (p *bucketPages) NextPage(ctx context.Context) (Page, error) {
	p.done = true
	out, err := p.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return Page{}, err
	}
	page := Page{Buckets: make([]result.Record, 0, len(out.Buckets))}
	for _, b := range out.Buckets {
		page.Buckets = append(page.Buckets, bucketRecord(b))
	}
	return page, nil
}

// ObjectPages adapts a paginated object listing over one bucket into the
// Pages contract, wrapping the SDK's ListObjectsV2 paginator.
func ObjectPages(api S3API, bucket string) Pages {
	return &objectPages{
		paginator: s3.NewListObjectsV2Paginator(api, &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
		}),
	}
}

type objectPages struct {
	paginator *s3.ListObjectsV2Paginator
}

func (p *objectPages) HasMorePages() bool { return p.paginator.HasMorePages() }

func (p *objectPages) NextPage(ctx context.Context) (Page, error) {
	out, err := p.paginator.NextPage(ctx)
	if err != nil {
		return Page{}, err
	}
	page := Page{Contents: make([]result.Record, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Contents = append(page.Contents, objectRecord(obj))
	}
	return page, nil
}

// VersionPages adapts a paginated version listing over one bucket into the
// Pages contract, wrapping the SDK's ListObjectVersions paginator. Each
// page carries current versions and delete markers separately; either may
// be empty.
func VersionPages(api S3API, bucket string) Pages {
	return &versionPages{
		paginator: s3.NewListObjectVersionsPaginator(api, &s3.ListObjectVersionsInput{
			Bucket: aws.String(bucket),
		}),
	}
}

type versionPages struct {
	paginator *s3.ListObjectVersionsPaginator
}

func (p *versionPages) HasMorePages() bool { return p.paginator.HasMorePages() }

func (p *versionPages) NextPage(ctx context.Context) (Page, error) {
	out, err := p.paginator.NextPage(ctx)
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Versions:      make([]result.Record, 0, len(out.Versions)),
		DeleteMarkers: make([]result.Record, 0, len(out.DeleteMarkers)),
	}
	for _, v := range out.Versions {
		page.Versions = append(page.Versions, versionRecord(v))
	}
	for _, m := range out.DeleteMarkers {
		page.DeleteMarkers = append(page.DeleteMarkers, deleteMarkerRecord(m))
	}
	return page, nil
}

// Replication issues the per-bucket replication side query. A bucket with
// no replication configuration yields a nil configuration, not an error;
// S3 reports that case as an API error code rather than an empty response.
func Replication(ctx context.Context, api S3API, bucket string) (*types.ReplicationConfiguration, error) {
	out, err := api.GetBucketReplication(ctx, &s3.GetBucketReplicationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ReplicationConfigurationNotFoundError" {
			return nil, nil
		}
		return nil, err
	}
	return out.ReplicationConfiguration, nil
}

func bucketRecord(b types.Bucket) result.Record {
	return result.Record{
		"Name":         aws.ToString(b.Name),
		"CreationDate": aws.ToTime(b.CreationDate),
	}
}

func objectRecord(o types.Object) result.Record {
	return result.Record{
		"Key":          aws.ToString(o.Key),
		"Size":         aws.ToInt64(o.Size),
		"LastModified": aws.ToTime(o.LastModified),
		"ETag":         aws.ToString(o.ETag),
		"StorageClass": string(o.StorageClass),
	}
}

func versionRecord(v types.ObjectVersion) result.Record {
	return result.Record{
		"Key":          aws.ToString(v.Key),
		"VersionId":    aws.ToString(v.VersionId),
		"IsLatest":     aws.ToBool(v.IsLatest),
		"Size":         aws.ToInt64(v.Size),
		"LastModified": aws.ToTime(v.LastModified),
		"ETag":         aws.ToString(v.ETag),
		"StorageClass": string(v.StorageClass),
	}
}

func deleteMarkerRecord(m types.DeleteMarkerEntry) result.Record {
	return result.Record{
		"Key":          aws.ToString(m.Key),
		"VersionId":    aws.ToString(m.VersionId),
		"IsLatest":     aws.ToBool(m.IsLatest),
		"LastModified": aws.ToTime(m.LastModified),
		"DeleteMarker": true,
	}
}
