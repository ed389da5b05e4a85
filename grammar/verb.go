// Package grammar implements the verb argument-resolution engine: the
// parameter classification metadata for each verb, construction and
// validation of verb instances, and the process-wide verb registry the
// CLI front-end queries.
package grammar

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kestrel-labs/s3sh/action"
	s3sherrors "github.com/kestrel-labs/s3sh/errors"
	"github.com/kestrel-labs/s3sh/result"
	"github.com/kestrel-labs/s3sh/s3api"
)

// Arg is one positional argument value together with the opaque context
// handle the CLI attached to it (e.g. its source position). The grammar
// never inspects the context; it only threads it into errors and results.
type Arg struct {
	Value string
	Ctx   any
}

// Keyword is one explicitly named argument. Keywords are carried as an
// ordered slice rather than a map so classification scan order, and the
// last-scanned-keyword context used by missing-keyword errors, stay
// deterministic.
type Keyword struct {
	Name string
	Arg  Arg
}

// Definition is the immutable metadata for one verb: its parameter
// classification, positional order, and the backend action it dispatches
// to. Definitions are created once at startup via Register and never
// mutated afterwards.
type Definition struct {
	name   string
	symbol string
	desc   string

	// hardRequired parameters must be supplied directly in every
	// invocation. softRequired parameters must eventually be present but
	// may be derived from an enclosing noun; they are enforced only under
	// strict binding. optional parameters are accepted, never required.
	hardRequired []string
	softRequired []string
	optional     []string

	// positionalOrder is the order positional arguments are matched to
	// keyword names. Defaults to softRequired at registration time.
	positionalOrder []string

	action action.Action
}

// Name returns the definition's declarative name.
func (d *Definition) Name() string { return d.name }

// Symbol returns the invocation keyword for this verb.
func (d *Definition) Symbol() string { return d.symbol }

// Desc returns the verb's help text.
func (d *Definition) Desc() string { return d.desc }

// Action returns the backend action this verb dispatches to.
func (d *Definition) Action() action.Action { return d.action }

// PositionalOrder returns the effective positional order.
func (d *Definition) PositionalOrder() []string {
	return slices.Clone(d.positionalOrder)
}

// Needs returns hard-required followed by soft-required names in
// declaration order. A name declared in both lists appears twice.
func (d *Definition) Needs() []string {
	needs := make([]string, 0, len(d.hardRequired)+len(d.softRequired))
	needs = append(needs, d.hardRequired...)
	needs = append(needs, d.softRequired...)
	return needs
}

// Wants returns Needs followed by the optional names.
func (d *Definition) Wants() []string {
	return append(d.Needs(), d.optional...)
}

type bindConfig struct {
	strict bool
	offset int
}

// BindOption configures verb instance construction.
type BindOption func(*bindConfig)

// Strict enforces soft-required parameters at bind time. Without it,
// soft-required parameters are treated as optional and may be resolved
// later from an enclosing noun.
func Strict() BindOption {
	return func(c *bindConfig) {
		c.strict = true
	}
}

// AtPosition starts positional matching at the given offset into the
// positional order, for callers that have already consumed leading slots.
func AtPosition(offset int) BindOption {
	return func(c *bindConfig) {
		if offset > 0 {
			c.offset = offset
		}
	}
}

// Bind constructs a verb instance from positional arguments, keywords,
// and the invocation's own context handle.
//
// Positional arguments are matched to the positional order left to right,
// then explicit keywords are merged on top, so a keyword for a name
// already filled positionally silently overrides the positional value.
// Classification then checks every bound keyword against the effective
// required and optional sets; unknown keywords are rejected eagerly, and
// any required name left unbound fails with the first unmet name.
func (d *Definition) Bind(invCtx any, args []Arg, keywords []Keyword, opts ...BindOption) (*Verb, error) {
	cfg := &bindConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	takes := len(d.positionalOrder)
	if given := len(args); given > takes {
		return nil, s3sherrors.NewError(d.symbol, s3sherrors.ErrTooManyArguments).
			WithArity(takes, given).
			WithCtx(args[given-1].Ctx)
	}

	bound := d.resolvePositional(args, cfg.offset)
	for _, kw := range keywords {
		if i := indexKeyword(bound, kw.Name); i >= 0 {
			bound[i].Arg = kw.Arg
		} else {
			bound = append(bound, kw)
		}
	}

	if err := d.classify(bound, invCtx, cfg.strict); err != nil {
		return nil, err
	}

	return &Verb{def: d, ctx: invCtx, kwargs: bound}, nil
}

// resolvePositional zips the positional order, from offset, with the
// supplied arguments. Slots beyond the argument count stay unbound.
func (d *Definition) resolvePositional(args []Arg, offset int) []Keyword {
	order := d.positionalOrder
	if offset < len(order) {
		order = order[offset:]
	} else {
		order = nil
	}
	bound := make([]Keyword, 0, len(args))
	for i, a := range args {
		if i >= len(order) {
			break
		}
		bound = append(bound, Keyword{Name: order[i], Arg: a})
	}
	return bound
}

// classify checks every bound keyword against the effective required and
// optional sets. Under strict binding the soft-required names join the
// required set; otherwise they join the optional set.
func (d *Definition) classify(bound []Keyword, invCtx any, strict bool) error {
	required := slices.Clone(d.hardRequired)
	optional := slices.Clone(d.optional)
	if strict {
		required = append(required, d.softRequired...)
	} else {
		optional = append(optional, d.softRequired...)
	}

	lastCtx := invCtx
	for _, kw := range bound {
		if i := slices.Index(required, kw.Name); i >= 0 {
			required = slices.Delete(required, i, i+1)
		} else if i := slices.Index(optional, kw.Name); i >= 0 {
			optional = slices.Delete(optional, i, i+1)
		} else {
			return s3sherrors.NewError(d.symbol, s3sherrors.ErrExtraKeyword).
				WithKeyword(kw.Name).
				WithCtx(kw.Arg.Ctx)
		}
		lastCtx = kw.Arg.Ctx
	}

	if len(required) > 0 {
		// Reports only the first unmet name; callers wanting the full set
		// consult Missing on a lenient bind. The context attribution (last
		// keyword scanned) matches the CLI's reporting expectations.
		return s3sherrors.NewError(d.symbol, s3sherrors.ErrMissingKeyword).
			WithKeyword(required[0]).
			WithCtx(lastCtx)
	}
	return nil
}

func indexKeyword(kws []Keyword, name string) int {
	for i, kw := range kws {
		if kw.Name == name {
			return i
		}
	}
	return -1
}

// Verb is one validated invocation of a definition: the resolved mapping
// of parameter name to value plus the invocation context.
type Verb struct {
	def    *Definition
	ctx    any
	kwargs []Keyword
}

// Symbol returns the verb's invocation keyword.
func (v *Verb) Symbol() string { return v.def.symbol }

// Definition returns the definition this instance was built from.
func (v *Verb) Definition() *Definition { return v.def }

// Context returns the invocation's own opaque context handle.
func (v *Verb) Context() any { return v.ctx }

// Has returns the parameter names actually bound, in resolution order.
func (v *Verb) Has() []string {
	names := make([]string, 0, len(v.kwargs))
	for _, kw := range v.kwargs {
		names = append(names, kw.Name)
	}
	return names
}

// Needs returns the verb's required names (hard then soft, declaration order).
func (v *Verb) Needs() []string { return v.def.Needs() }

// Wants returns every name the verb accepts.
func (v *Verb) Wants() []string { return v.def.Wants() }

// Missing returns the required names not yet bound, preserving Needs order.
func (v *Verb) Missing() []string {
	has := v.Has()
	missing := make([]string, 0)
	for _, name := range v.Needs() {
		if !slices.Contains(has, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Arg returns the bound argument for a parameter name.
func (v *Verb) Arg(name string) (Arg, bool) {
	if i := indexKeyword(v.kwargs, name); i >= 0 {
		return v.kwargs[i].Arg, true
	}
	return Arg{}, false
}

// Value returns the bound value for a parameter name, or "".
func (v *Verb) Value(name string) string {
	a, _ := v.Arg(name)
	return a.Value
}

// Params flattens the resolved bindings into the parameter map actions
// dispatch on.
func (v *Verb) Params() action.Params {
	params := make(action.Params, len(v.kwargs))
	for _, kw := range v.kwargs {
		params[kw.Name] = kw.Arg.Value
	}
	return params
}

// Invoke dispatches the verb to its backend action and returns the lazy
// result stream. Construction is synchronous; the stream suspends on
// backend I/O only as it is consumed.
func (v *Verb) Invoke(ctx context.Context, api s3api.S3API) (*result.Stream, error) {
	return v.def.action.Invoke(ctx, api, &action.Invocation{
		Params: v.Params(),
		Ctx:    v.ctx,
	})
}

func (v *Verb) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s", strings.ToUpper(v.def.symbol))
	for _, kw := range v.kwargs {
		fmt.Fprintf(&b, " %s=%s", kw.Name, kw.Arg.Value)
	}
	b.WriteString(">")
	return b.String()
}
