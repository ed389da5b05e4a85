package action

import (
	"context"
	"io"
	"log/slog"

	s3sherrors "github.com/kestrel-labs/s3sh/errors"
	"github.com/kestrel-labs/s3sh/result"
	"github.com/kestrel-labs/s3sh/s3api"
)

func init() {
	Register(&ListAction{})
	Register(&ListVersionsAction{})
	Register(&ListReplicatedAction{})
}

// ListAction implements the baseline listing verb. With a bucket bound it
// lists that bucket's objects; without one it lists the account's buckets.
type ListAction struct{}

// Name returns the action's registry name.
func (a *ListAction) Name() string { return "ls" }

// Invoke selects the invocation shape and returns the matching lazy
// listing stream.
func (a *ListAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	shape := ShapeOf(inv.Params)
	slog.Debug("dispatching", "action", a.Name(), "shape", shape.String())

	switch shape {
	case ShapeObject:
		bucket := inv.Params.Bucket()
		return pagedStream(s3api.ObjectPages(api, bucket), result.KindObject, inv.Ctx,
			func(p s3api.Page) []result.Record {
				return tagBucket(p.Contents, bucket)
			}), nil
	default:
		return pagedStream(s3api.BucketPages(api), result.KindBucket, inv.Ctx,
			func(p s3api.Page) []result.Record {
				return p.Buckets
			}), nil
	}
}

// ListVersionsAction lists object versions and delete markers. It is
// always object-scoped; each page's current versions and delete markers
// are concatenated, in that order, into one output sequence.
type ListVersionsAction struct{}

// Name returns the action's registry name.
func (a *ListVersionsAction) Name() string { return "lsv" }

func (a *ListVersionsAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	bucket := inv.Params.Bucket()
	if bucket == "" {
		return nil, s3sherrors.NewError(a.Name(), s3sherrors.ErrMissingKeyword).
			WithKeyword(ParamBucket).
			WithCtx(inv.Ctx)
	}
	slog.Debug("dispatching", "action", a.Name(), "bucket", bucket)

	return pagedStream(s3api.VersionPages(api, bucket), result.KindObjectVersion, inv.Ctx,
		func(p s3api.Page) []result.Record {
			records := append(p.Versions, p.DeleteMarkers...)
			return tagBucket(records, bucket)
		}), nil
}

// ListReplicatedAction lists only replicated entities. Bucket-scoped it
// yields the buckets carrying a replication configuration; object-scoped
// it lists a bucket's objects, short-circuiting to an empty stream when
// the bucket has no replication configuration. The replication side query
// runs once per parent entity, synchronously, with no caching across
// invocations.
type ListReplicatedAction struct{}

// Name returns the action's registry name.
func (a *ListReplicatedAction) Name() string { return "lsr" }

func (a *ListReplicatedAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	shape := ShapeOf(inv.Params)
	slog.Debug("dispatching", "action", a.Name(), "shape", shape.String())

	if shape == ShapeObject {
		return a.objectScoped(ctx, api, inv)
	}
	return a.bucketScoped(api, inv.Ctx), nil
}

func (a *ListReplicatedAction) objectScoped(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	bucket := inv.Params.Bucket()
	cfg, err := s3api.Replication(ctx, api, bucket)
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket)
	}
	if cfg == nil {
		return result.Empty(), nil
	}
	return pagedStream(s3api.ObjectPages(api, bucket), result.KindObject, inv.Ctx,
		func(p s3api.Page) []result.Record {
			return tagBucket(p.Contents, bucket)
		}), nil
}

func (a *ListReplicatedAction) bucketScoped(api s3api.S3API, invCtx any) *result.Stream {
	pages := s3api.BucketPages(api)
	var buf []result.Record
	return result.NewStream(func(ctx context.Context) (result.Result, error) {
		for {
			for len(buf) == 0 {
				if !pages.HasMorePages() {
					return result.Result{}, io.EOF
				}
				page, err := pages.NextPage(ctx)
				if err != nil {
					return result.Result{}, err
				}
				buf = page.Buckets
			}
			rec := buf[0]
			buf = buf[1:]

			name, _ := rec["Name"].(string)
			cfg, err := s3api.Replication(ctx, api, name)
			if err != nil {
				return result.Result{}, s3sherrors.NewError(a.Name(), err).WithBucket(name)
			}
			if cfg == nil {
				continue
			}
			return result.Wrap(result.KindBucket, rec, invCtx), nil
		}
	})
}
