package action

import (
	"context"
	"io"

	"github.com/kestrel-labs/s3sh/result"
	"github.com/kestrel-labs/s3sh/s3api"
)

// pagedStream drains a page sequence into a result stream, one record at a
// time. extract selects the operation's record-bearing keys from each
// page. Only one page is buffered; the next page is fetched when the
// buffer runs out and the consumer asks for more, so abandoning the
// stream never triggers further backend calls.
func pagedStream(
	pages s3api.Pages,
	kind result.Kind,
	invCtx any,
	extract func(s3api.Page) []result.Record,
) *result.Stream {
	var buf []result.Record
	return result.NewStream(func(ctx context.Context) (result.Result, error) {
		for len(buf) == 0 {
			if !pages.HasMorePages() {
				return result.Result{}, io.EOF
			}
			page, err := pages.NextPage(ctx)
			if err != nil {
				return result.Result{}, err
			}
			buf = extract(page)
		}
		rec := buf[0]
		buf = buf[1:]
		return result.Wrap(kind, rec, invCtx), nil
	})
}

// tagBucket injects the owning bucket into each record. The backend does
// not attach provenance itself.
func tagBucket(records []result.Record, bucket string) []result.Record {
	for _, rec := range records {
		rec[result.BucketField] = bucket
	}
	return records
}
