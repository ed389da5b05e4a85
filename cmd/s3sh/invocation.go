package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kestrel-labs/s3sh/grammar"
	"github.com/kestrel-labs/s3sh/result"
)

// invocationCtx is the opaque context handle for the invocation itself.
type invocationCtx struct {
	verb string
}

func (c invocationCtx) String() string {
	return c.verb + " invocation"
}

// argCtx locates one command-line token for error reporting.
type argCtx struct {
	index int
	token string
}

func (c argCtx) String() string {
	return fmt.Sprintf("argument %d (%q)", c.index+1, c.token)
}

// parseInvocation splits command-line tokens into positional arguments and
// keywords. A token containing '=' binds a keyword; everything else is
// positional. Each token carries its position as the grammar context.
func parseInvocation(args []string) ([]grammar.Arg, []grammar.Keyword) {
	var positional []grammar.Arg
	var keywords []grammar.Keyword
	for i, token := range args {
		ctx := argCtx{index: i, token: token}
		if name, value, ok := strings.Cut(token, "="); ok && name != "" {
			keywords = append(keywords, grammar.Keyword{
				Name: name,
				Arg:  grammar.Arg{Value: value, Ctx: ctx},
			})
			continue
		}
		positional = append(positional, grammar.Arg{Value: token, Ctx: ctx})
	}
	return positional, keywords
}

// renderStream drains the result stream to the writer. An object body is
// written raw; every other record prints as one line of kind plus sorted
// fields.
func renderStream(w io.Writer, ctx context.Context, stream *result.Stream) error {
	for {
		res, err := stream.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if body, ok := res.Record["Body"].([]byte); ok {
			if _, err := w.Write(body); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, formatResult(res)); err != nil {
			return err
		}
	}
}

func formatResult(res result.Result) string {
	fields := make([]string, 0, len(res.Record))
	for name := range res.Record {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(res.Kind.String())
	for _, name := range fields {
		fmt.Fprintf(&b, " %s=%v", name, res.Record[name])
	}
	return b.String()
}
