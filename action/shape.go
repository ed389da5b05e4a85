package action

// Shape is the invocation shape a listing verb resolves to, computed once
// from the bound parameters instead of scattering presence checks.
type Shape int

const (
	// ShapeBucket scopes the operation to the account's buckets.
	ShapeBucket Shape = iota
	// ShapeObject scopes the operation to the objects of one bucket.
	ShapeObject
	// ShapeObjectVersion scopes the operation to the versions of one bucket.
	ShapeObjectVersion
)

// String returns the shape's display name.
func (s Shape) String() string {
	switch s {
	case ShapeBucket:
		return "bucket-scoped"
	case ShapeObject:
		return "object-scoped"
	case ShapeObjectVersion:
		return "object-version-scoped"
	}
	return "unknown"
}

// ShapeOf resolves the invocation shape: a bound, non-empty bucket makes
// the operation object-scoped, otherwise it is bucket-scoped.
func ShapeOf(p Params) Shape {
	if p.Bucket() != "" {
		return ShapeObject
	}
	return ShapeBucket
}
