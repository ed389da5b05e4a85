package grammar

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/kestrel-labs/s3sh/action"
	s3sherrors "github.com/kestrel-labs/s3sh/errors"
)

// verbs is the process-wide symbol registry. It is populated once at
// startup from the declarative verb table and treated as read-only
// afterwards; concurrent registration is unsupported.
var verbs = map[string]*Definition{}

// Config is the declarative source a Definition is built from.
type Config struct {
	// Symbol is the invocation keyword. Required and unique; re-registering
	// a symbol overwrites the prior entry.
	Symbol string

	// Desc is the verb's help text.
	Desc string

	// Parameter classification lists. All default to empty.
	HardRequired []string
	SoftRequired []string
	Optional     []string

	// PositionalOrder overrides the order positional arguments are matched
	// to keyword names. Defaults to SoftRequired.
	PositionalOrder []string

	// Action names the registered backend action this verb dispatches to.
	// Required; an unresolvable action is a load-time fatal error.
	Action string
}

// Register builds a Definition from its declarative configuration and
// registers it under its symbol. A missing symbol or unresolvable action
// fails with ErrInvalidDefinition; such a verb must never reach
// invocation time, so callers load verbs through MustRegister at startup.
func Register(name string, cfg Config) (*Definition, error) {
	slog.Debug("loading verb", "name", name, "symbol", cfg.Symbol)

	if cfg.Symbol == "" {
		return nil, s3sherrors.NewError(name, s3sherrors.ErrInvalidDefinition).
			WithMessage("symbol is required")
	}
	act := action.Lookup(cfg.Action)
	if act == nil {
		return nil, s3sherrors.NewError(name, s3sherrors.ErrInvalidDefinition).
			WithMessage(fmt.Sprintf("action %q is not registered", cfg.Action))
	}

	def := &Definition{
		name:            name,
		symbol:          cfg.Symbol,
		desc:            cfg.Desc,
		hardRequired:    slices.Clone(cfg.HardRequired),
		softRequired:    slices.Clone(cfg.SoftRequired),
		optional:        slices.Clone(cfg.Optional),
		positionalOrder: slices.Clone(cfg.PositionalOrder),
		action:          act,
	}
	if def.positionalOrder == nil {
		def.positionalOrder = slices.Clone(def.softRequired)
	}

	verbs[def.symbol] = def
	return def, nil
}

// MustRegister is Register panicking on definition errors. Verb loading
// happens before the CLI serves anything, so a malformed definition stops
// the process.
func MustRegister(name string, cfg Config) *Definition {
	def, err := Register(name, cfg)
	if err != nil {
		panic(err)
	}
	return def
}

// Lookup returns the definition registered under a symbol.
func Lookup(symbol string) (*Definition, bool) {
	def, ok := verbs[symbol]
	return def, ok
}

// Symbols returns every registered symbol, sorted.
func Symbols() []string {
	symbols := make([]string, 0, len(verbs))
	for symbol := range verbs {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
