package transfer

import (
	"errors"
	"io"
	"iter"
)

// Source is a lazy sequence of binary segments. Segment boundaries carry no
// meaning; a non-nil error ends the sequence.
type Source = iter.Seq2[[]byte, error]

const defaultReadSize = 64 * 1024

// FromBytes yields b as a single segment.
func FromBytes(b []byte) Source {
	return FromSegments(b)
}

func FromString(s string) Source {
	return FromSegments([]byte(s))
}

// FromSegments yields each segment in order.
func FromSegments(segments ...[]byte) Source {
	return func(yield func([]byte, error) bool) {
		for _, s := range segments {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// FromReader reads r until io.EOF, yielding each read as its own segment.
// Every yielded slice is freshly allocated.
func FromReader(r io.Reader) Source {
	return func(yield func([]byte, error) bool) {
		for {
			buf := make([]byte, defaultReadSize)
			n, err := r.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
