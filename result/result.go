// Package result defines the typed records the listing pipeline yields and
// the lazy stream they are delivered through.
package result

// Record is one raw backend record: a mapping from field names to values.
// The dispatcher injects provenance fields (BucketField, KeyField) the
// backend does not attach itself.
type Record map[string]any

// Provenance field names injected by the dispatcher.
const (
	BucketField = "_bucket"
	KeyField    = "_key"
)

// Kind is the semantic tag attached to an output record.
type Kind int

const (
	// KindBucket tags a bucket-level record.
	KindBucket Kind = iota
	// KindObject tags an object-level record.
	KindObject
	// KindObjectVersion tags an object-version-level record.
	KindObjectVersion
)

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindBucket:
		return "bucket"
	case KindObject:
		return "object"
	case KindObjectVersion:
		return "object-version"
	}
	return "unknown"
}

// Result pairs a raw record with its semantic kind and the opaque
// invocation context. Results are ephemeral: produced lazily, consumed
// immediately downstream, never mutated after creation.
type Result struct {
	Kind   Kind
	Record Record
	Ctx    any
}

// Wrap tags a raw record with its kind and invocation context.
// Wrapping never fails; malformed records are the backend's problem.
func Wrap(kind Kind, record Record, ctx any) Result {
	return Result{Kind: kind, Record: record, Ctx: ctx}
}
