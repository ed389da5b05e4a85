package result

import (
	"context"
	"io"
)

// Stream is a lazy, pull-based sequence of results. Each call to Next may
// suspend on backend I/O; a consumer that stops calling Next never forces
// further backend calls. Streams are single-consumer and not safe for
// concurrent use.
type Stream struct {
	pull func(ctx context.Context) (Result, error)
	done bool
}

// NewStream wraps a pull function into a Stream. The pull function returns
// io.EOF when the sequence is exhausted; after that the stream is done and
// the pull function is never called again.
func NewStream(pull func(ctx context.Context) (Result, error)) *Stream {
	return &Stream{pull: pull}
}

// Empty returns a stream that yields nothing.
func Empty() *Stream {
	return &Stream{done: true}
}

// Of returns a stream over a fixed set of results.
func Of(results ...Result) *Stream {
	i := 0
	return NewStream(func(context.Context) (Result, error) {
		if i >= len(results) {
			return Result{}, io.EOF
		}
		r := results[i]
		i++
		return r, nil
	})
}

// Next returns the next result, or io.EOF when the stream is exhausted.
// Any other error ends the stream as well.
func (s *Stream) Next(ctx context.Context) (Result, error) {
	if s.done {
		return Result{}, io.EOF
	}
	r, err := s.pull(ctx)
	if err != nil {
		s.done = true
		return Result{}, err
	}
	return r, nil
}

// Drain consumes the remainder of the stream into a slice. It is a
// convenience for the CLI and tests; large listings should iterate with
// Next instead.
func (s *Stream) Drain(ctx context.Context) ([]Result, error) {
	var out []Result
	for {
		r, err := s.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
}
