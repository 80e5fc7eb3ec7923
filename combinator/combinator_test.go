package combinator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	c "go.appointy.com/quill/combinator"
)

func run[T any](t *testing.T, p c.Parser[T], input string) (T, c.State, error) {
	t.Helper()
	return p(c.NewState([]byte(input)))
}

func TestLiteral(t *testing.T) {
	v, next, err := run(t, c.Literal("query"), "query rest")
	require.NoError(t, err)
	require.Equal(t, "query", v)
	require.Equal(t, 5, next.Offset)
	require.Equal(t, " rest", string(next.Rest()))

	_, next, err = run(t, c.Literal("query"), "que")
	require.Error(t, err)
	require.Equal(t, 0, next.Offset)
}

func TestByteAndSatisfy(t *testing.T) {
	_, _, err := run(t, c.Byte('{'), "}")
	require.Error(t, err)

	digit := c.Satisfy("a digit", func(b byte) bool { return b >= '0' && b <= '9' })
	v, next, err := run(t, digit, "7x")
	require.NoError(t, err)
	require.Equal(t, byte('7'), v)
	require.Equal(t, 1, next.Offset)

	_, _, err = run(t, digit, "x")
	require.EqualError(t, err, "expected a digit at offset 0")
}

func TestMapAndThen(t *testing.T) {
	digit := c.Satisfy("a digit", func(b byte) bool { return b >= '0' && b <= '9' })
	num := c.Map(c.Many1(digit), func(ds []byte) int {
		n := 0
		for _, d := range ds {
			n = n*10 + int(d-'0')
		}
		return n
	})
	v, _, err := run(t, num, "123")
	require.NoError(t, err)
	require.Equal(t, 123, v)

	repeated := c.Then(c.Byte('a'), func(byte) c.Parser[string] { return c.Literal("bc") })
	s, next, err := run(t, repeated, "abc")
	require.NoError(t, err)
	require.Equal(t, "bc", s)
	require.Equal(t, 3, next.Offset)
}

func TestOneOfTriesAlternativesInOrder(t *testing.T) {
	p := c.OneOf(c.Literal("true"), c.Literal("truth"))
	v, _, err := run(t, p, "true")
	require.NoError(t, err)
	require.Equal(t, "true", v)

	// Literal rewinds fully, so the second alternative still runs.
	v, _, err = run(t, p, "truth")
	require.NoError(t, err)
	require.Equal(t, "truth", v)
}

func TestOneOfAbortsAfterConsumption(t *testing.T) {
	consuming := c.After(c.Byte('('), c.Literal("a"))
	p := c.OneOf(consuming, c.Literal("(b"))

	// The first alternative consumed "(" before failing, so the second is
	// never tried.
	_, next, err := run(t, p, "(b")
	require.Error(t, err)
	require.Equal(t, 1, next.Offset)
}

func TestMaybe(t *testing.T) {
	v, next, err := run(t, c.Maybe(c.Literal("on")), "x")
	require.NoError(t, err)
	require.Nil(t, v)
	require.Equal(t, 0, next.Offset)

	v, next, err = run(t, c.Maybe(c.Literal("on")), "on")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "on", *v)
	require.Equal(t, 2, next.Offset)

	// A failure after consumption is not recovered.
	consuming := c.After(c.Byte('('), c.Literal("a"))
	_, _, err = run(t, c.Maybe(consuming), "(b")
	require.Error(t, err)
}

func TestMany(t *testing.T) {
	p := c.Many(c.Byte('a'))
	v, next, err := run(t, p, "aaab")
	require.NoError(t, err)
	require.Len(t, v, 3)
	require.Equal(t, 3, next.Offset)

	v, next, err = run(t, p, "b")
	require.NoError(t, err)
	require.Empty(t, v)
	require.Equal(t, 0, next.Offset)

	_, _, err = run(t, c.Many1(c.Byte('a')), "b")
	require.Error(t, err)
}

func TestSepBy(t *testing.T) {
	digit := c.Satisfy("a digit", func(b byte) bool { return b >= '0' && b <= '9' })
	p := c.SepBy1(digit, c.Byte(','))

	v, next, err := run(t, p, "1,2,3")
	require.NoError(t, err)
	require.Equal(t, []byte{'1', '2', '3'}, v)
	require.Equal(t, 5, next.Offset)

	// A trailing separator is left unconsumed.
	v, next, err = run(t, p, "1,2,")
	require.NoError(t, err)
	require.Equal(t, []byte{'1', '2'}, v)
	require.Equal(t, 3, next.Offset)

	empty, next, err := run(t, c.SepBy(digit, c.Byte(',')), "x")
	require.NoError(t, err)
	require.Empty(t, empty)
	require.Equal(t, 0, next.Offset)
}

func TestLazyRecursion(t *testing.T) {
	// nested ::= "x" | "(" nested ")"
	var nested c.Parser[int]
	nested = c.Lazy(func() c.Parser[int] {
		return c.OneOf(
			c.Map(c.Byte('x'), func(byte) int { return 0 }),
			c.Then(c.Byte('('), func(byte) c.Parser[int] {
				return c.Then(nested, func(depth int) c.Parser[int] {
					return c.Map(c.Byte(')'), func(byte) int { return depth + 1 })
				})
			}),
		)
	})

	depth, next, err := run(t, nested, "(((x)))")
	require.NoError(t, err)
	require.Equal(t, 3, depth)
	require.True(t, next.EOF())
}

func TestSucceedAndFail(t *testing.T) {
	v, next, err := run(t, c.Succeed(42), "anything")
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 0, next.Offset)

	_, _, err = run(t, c.Fail[int]("nope"), "anything")
	require.EqualError(t, err, "nope at offset 0")
}
