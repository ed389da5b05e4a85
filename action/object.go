package action

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	s3sherrors "github.com/kestrel-labs/s3sh/errors"
	"github.com/kestrel-labs/s3sh/result"
	"github.com/kestrel-labs/s3sh/s3api"
)

func init() {
	Register(&HeadAction{})
	Register(&GetAction{})
	Register(&PutAction{})
	Register(&CopyAction{})
}

// DefaultContentType is used when content type detection fails.
const DefaultContentType = "application/octet-stream"

// requireNoun checks the bucket/key pair every object action needs.
func requireNoun(name string, p Params) error {
	if p.Bucket() == "" {
		return s3sherrors.NewError(name, s3sherrors.ErrInvalidInput).
			WithKey(p.Key()).
			WithMessage("bucket name cannot be empty")
	}
	if p.Key() == "" {
		return s3sherrors.NewError(name, s3sherrors.ErrInvalidInput).
			WithBucket(p.Bucket()).
			WithMessage("object key cannot be empty")
	}
	return nil
}

// HeadAction retrieves object metadata without the object itself.
type HeadAction struct{}

// Name returns the action's registry name.
func (a *HeadAction) Name() string { return "head" }

func (a *HeadAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	if err := requireNoun(a.Name(), inv.Params); err != nil {
		return nil, err
	}
	bucket, key := inv.Params.Bucket(), inv.Params.Key()

	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if v := inv.Params[ParamVersionID]; v != "" {
		input.VersionId = aws.String(v)
	}

	out, err := api.HeadObject(ctx, input)
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key)
	}

	rec := result.Record{
		"ContentType":   aws.ToString(out.ContentType),
		"ContentLength": aws.ToInt64(out.ContentLength),
		"LastModified":  aws.ToTime(out.LastModified),
		"ETag":          aws.ToString(out.ETag),

		result.BucketField: bucket,
		result.KeyField:    key,
	}
	if out.VersionId != nil {
		rec["VersionId"] = aws.ToString(out.VersionId)
	}
	return result.Of(result.Wrap(result.KindObject, rec, inv.Ctx)), nil
}

// GetAction downloads an object into memory and yields it as a single
// record carrying the body and metadata.
type GetAction struct{}

// Name returns the action's registry name.
func (a *GetAction) Name() string { return "get" }

func (a *GetAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	if err := requireNoun(a.Name(), inv.Params); err != nil {
		return nil, err
	}
	bucket, key := inv.Params.Bucket(), inv.Params.Key()

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if v := inv.Params[ParamVersionID]; v != "" {
		input.VersionId = aws.String(v)
	}

	out, err := api.GetObject(ctx, input)
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key).
			WithMessage("read object body")
	}

	rec := result.Record{
		"Body":          body,
		"ContentType":   aws.ToString(out.ContentType),
		"ContentLength": aws.ToInt64(out.ContentLength),
		"ETag":          aws.ToString(out.ETag),

		result.BucketField: bucket,
		result.KeyField:    key,
	}
	return result.Of(result.Wrap(result.KindObject, rec, inv.Ctx)), nil
}

// PutAction uploads a local file. The content type is sniffed from the
// file's leading bytes, falling back to extension lookup.
type PutAction struct{}

// Name returns the action's registry name.
func (a *PutAction) Name() string { return "put" }

func (a *PutAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	if err := requireNoun(a.Name(), inv.Params); err != nil {
		return nil, err
	}
	bucket, key := inv.Params.Bucket(), inv.Params.Key()

	path := inv.Params[ParamFile]
	if path == "" {
		return nil, s3sherrors.NewError(a.Name(), s3sherrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("file cannot be empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key)
	}
	if info.IsDir() {
		return nil, s3sherrors.NewError(a.Name(), s3sherrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("file points to a directory")
	}

	out, err := api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(detectContentType(path)),
	})
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).WithBucket(bucket).WithKey(key)
	}

	rec := result.Record{
		"ETag": aws.ToString(out.ETag),
		"Size": info.Size(),

		result.BucketField: bucket,
		result.KeyField:    key,
	}
	return result.Of(result.Wrap(result.KindObject, rec, inv.Ctx)), nil
}

// CopyAction copies an object server-side. Targets default to the source
// bucket and key when absent.
type CopyAction struct{}

// Name returns the action's registry name.
func (a *CopyAction) Name() string { return "cp" }

func (a *CopyAction) Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error) {
	if err := requireNoun(a.Name(), inv.Params); err != nil {
		return nil, err
	}
	bucket, key := inv.Params.Bucket(), inv.Params.Key()

	targetBucket := inv.Params[ParamTargetBucket]
	if targetBucket == "" {
		targetBucket = bucket
	}
	targetKey := inv.Params[ParamTargetKey]
	if targetKey == "" {
		targetKey = key
	}
	if targetBucket == bucket && targetKey == key {
		return nil, s3sherrors.NewError(a.Name(), s3sherrors.ErrInvalidInput).
			WithBucket(bucket).
			WithKey(key).
			WithMessage("cannot copy object to itself")
	}

	_, err := api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(targetBucket),
		Key:        aws.String(targetKey),
		CopySource: aws.String(bucket + "/" + key),
	})
	if err != nil {
		return nil, s3sherrors.NewError(a.Name(), err).
			WithBucket(targetBucket).
			WithKey(targetKey).
			WithMessage("failed to copy from " + bucket + "/" + key)
	}

	rec := result.Record{
		result.BucketField: targetBucket,
		result.KeyField:    targetKey,

		"Source": bucket + "/" + key,
	}
	return result.Of(result.Wrap(result.KindObject, rec, inv.Ctx)), nil
}

// detectContentType sniffs a local file's content type, falling back to
// extension-based lookup.
func detectContentType(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return detectContentTypeFromExtension(path)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}
	return detectContentTypeFromExtension(path)
}

func detectContentTypeFromExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return DefaultContentType
}
