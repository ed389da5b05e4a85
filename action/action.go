// Package action contains the backend action dispatchers: given the
// resolved parameters of a verb invocation, each action decides which
// backend call to issue and which result kind to wrap output in, and
// drains paginated responses into a lazy result stream.
package action

import (
	"context"

	"github.com/kestrel-labs/s3sh/result"
	"github.com/kestrel-labs/s3sh/s3api"
)

// Canonical parameter names shared between the verb table and the actions.
const (
	ParamBucket       = "bucket"
	ParamKey          = "key"
	ParamVersionID    = "version_id"
	ParamTargetBucket = "target_bucket"
	ParamTargetKey    = "target_key"
	ParamFile         = "file"
)

// Params is the resolved parameter mapping of one verb invocation.
type Params map[string]string

// Bucket returns the bound bucket name, or "".
func (p Params) Bucket() string { return p[ParamBucket] }

// Key returns the bound object key, or "".
func (p Params) Key() string { return p[ParamKey] }

// Invocation carries one invocation's resolved parameters plus the opaque
// context handle threaded into every result and error.
type Invocation struct {
	Params Params
	Ctx    any
}

// Action is one backend operation a verb dispatches to. Invoke issues the
// backend call(s) and returns a lazy result stream; listing actions defer
// all backend I/O to stream consumption.
type Action interface {
	Name() string
	Invoke(ctx context.Context, api s3api.S3API, inv *Invocation) (*result.Stream, error)
}

// actions is the process-wide action registry, populated from init
// functions before any verb is registered. Read-only afterwards.
var actions = map[string]Action{}

// Register adds an action under its name. Last writer wins.
func Register(a Action) {
	actions[a.Name()] = a
}

// Lookup returns the action registered under a name, or nil.
func Lookup(name string) Action {
	return actions[name]
}
