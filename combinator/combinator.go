// Package combinator provides a small applicative parser-combinator kernel
// over byte-indexed input. A Parser consumes a prefix of the input and
// either succeeds with a value or fails with a message and the position it
// reached. Alternation is predictable: an alternative that fails after
// consuming input fails the whole alternation, so lookahead is explicit via
// Maybe rather than implicit backtracking.
package combinator

import "fmt"

// State is an immutable cursor into the input: the full byte slice plus the
// current offset. Copies are cheap; parsers thread State by value.
type State struct {
	Input  []byte
	Offset int
}

// NewState starts a cursor at the beginning of input.
func NewState(input []byte) State {
	return State{Input: input}
}

// Rest returns the unconsumed suffix of the input.
func (s State) Rest() []byte {
	return s.Input[s.Offset:]
}

// EOF reports whether all input has been consumed.
func (s State) EOF() bool {
	return s.Offset >= len(s.Input)
}

// Error is a parse failure at a byte offset.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// A Parser consumes a prefix of the input held by the state. On success it
// returns the parsed value and the advanced state. On failure it returns a
// *Error and the state at the point of failure; alternation compares that
// state's offset against the entry offset to decide whether the alternative
// consumed input before failing.
type Parser[T any] func(State) (T, State, error)

// Succeed consumes nothing and yields v.
func Succeed[T any](v T) Parser[T] {
	return func(s State) (T, State, error) {
		return v, s, nil
	}
}

// Fail consumes nothing and fails with the given message.
func Fail[T any](message string) Parser[T] {
	return func(s State) (T, State, error) {
		var zero T
		return zero, s, &Error{Offset: s.Offset, Message: message}
	}
}

// Byte matches exactly the byte c.
func Byte(c byte) Parser[byte] {
	return func(s State) (byte, State, error) {
		if s.EOF() || s.Input[s.Offset] != c {
			return 0, s, &Error{Offset: s.Offset, Message: fmt.Sprintf("expected %q", c)}
		}
		return c, State{Input: s.Input, Offset: s.Offset + 1}, nil
	}
}

// Satisfy matches any single byte for which pred returns true. The
// description names the byte class in failure messages.
func Satisfy(description string, pred func(byte) bool) Parser[byte] {
	return func(s State) (byte, State, error) {
		if s.EOF() || !pred(s.Input[s.Offset]) {
			return 0, s, &Error{Offset: s.Offset, Message: "expected " + description}
		}
		return s.Input[s.Offset], State{Input: s.Input, Offset: s.Offset + 1}, nil
	}
}

// Literal matches the exact byte sequence lit.
func Literal(lit string) Parser[string] {
	return func(s State) (string, State, error) {
		if len(s.Input)-s.Offset < len(lit) || string(s.Input[s.Offset:s.Offset+len(lit)]) != lit {
			return "", s, &Error{Offset: s.Offset, Message: fmt.Sprintf("expected %q", lit)}
		}
		return lit, State{Input: s.Input, Offset: s.Offset + len(lit)}, nil
	}
}

// Map transforms a parser's result with f.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(s State) (B, State, error) {
		a, next, err := p(s)
		if err != nil {
			var zero B
			return zero, next, err
		}
		return f(a), next, nil
	}
}

// Then sequences p with a parser derived from its result (flat-map).
func Then[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(s State) (B, State, error) {
		a, next, err := p(s)
		if err != nil {
			var zero B
			return zero, next, err
		}
		return f(a)(next)
	}
}

// After runs a and discards its result, then runs b.
func After[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return func(s State) (B, State, error) {
		_, next, err := a(s)
		if err != nil {
			var zero B
			return zero, next, err
		}
		return b(next)
	}
}

// Before runs a, then runs b and discards its result, yielding a's value.
func Before[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return func(s State) (A, State, error) {
		v, next, err := a(s)
		if err != nil {
			var zero A
			return zero, next, err
		}
		_, next, err = b(next)
		if err != nil {
			var zero A
			return zero, next, err
		}
		return v, next, nil
	}
}

// OneOf tries alternatives in declared order. An alternative that fails
// without consuming input lets the next one run; one that fails after
// consuming input fails the whole alternation at that position. If every
// alternative fails without consuming, the last failure is reported.
func OneOf[T any](alternatives ...Parser[T]) Parser[T] {
	return func(s State) (T, State, error) {
		var zero T
		var lastErr error = &Error{Offset: s.Offset, Message: "no alternatives"}
		for _, p := range alternatives {
			v, next, err := p(s)
			if err == nil {
				return v, next, nil
			}
			if next.Offset != s.Offset {
				return zero, next, err
			}
			lastErr = err
		}
		return zero, s, lastErr
	}
}

// Maybe converts a failure without consumption into a nil success. A failure
// after consumption still propagates, keeping alternation predictable.
func Maybe[T any](p Parser[T]) Parser[*T] {
	return func(s State) (*T, State, error) {
		v, next, err := p(s)
		if err != nil {
			if next.Offset == s.Offset {
				return nil, s, nil
			}
			return nil, next, err
		}
		return &v, next, nil
	}
}

// Many collects zero or more successive results of p, stopping at the first
// failure without consumption. A failure after consumption propagates.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s State) ([]T, State, error) {
		var out []T
		for {
			v, next, err := p(s)
			if err != nil {
				if next.Offset == s.Offset {
					return out, s, nil
				}
				return nil, next, err
			}
			if next.Offset == s.Offset {
				// A zero-width success would loop forever.
				return out, s, nil
			}
			out = append(out, v)
			s = next
		}
	}
}

// Many1 collects one or more successive results of p.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(s State) ([]T, State, error) {
		first, next, err := p(s)
		if err != nil {
			return nil, next, err
		}
		rest, next, err := Many(p)(next)
		if err != nil {
			return nil, next, err
		}
		return append([]T{first}, rest...), next, nil
	}
}

// SepBy1 parses one or more p separated by sep. A (sep, p) attempt in which
// p fails without consuming input rewinds to the end of the last element and
// stops, so a trailing separator is left unconsumed rather than failing the
// list. A partial element (p fails after consuming) still fails the parse.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State) ([]T, State, error) {
		first, next, err := p(s)
		if err != nil {
			return nil, next, err
		}
		out := []T{first}
		for {
			_, afterSep, err := sep(next)
			if err != nil {
				if afterSep.Offset == next.Offset {
					return out, next, nil
				}
				return nil, afterSep, err
			}
			v, afterP, err := p(afterSep)
			if err != nil {
				if afterP.Offset == afterSep.Offset {
					return out, next, nil
				}
				return nil, afterP, err
			}
			out = append(out, v)
			next = afterP
		}
	}
}

// SepBy parses zero or more p separated by sep.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State) ([]T, State, error) {
		out, next, err := SepBy1(p, sep)(s)
		if err != nil {
			if next.Offset == s.Offset {
				return nil, s, nil
			}
			return nil, next, err
		}
		return out, next, nil
	}
}

// Lazy defers construction of p until first use, so mutually recursive
// grammar rules can reference each other without eager cyclic construction.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var p Parser[T]
	return func(s State) (T, State, error) {
		if p == nil {
			p = build()
		}
		return p(s)
	}
}
