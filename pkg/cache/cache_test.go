package cache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gomathml/pkg/cache"
	"github.com/sandrolain/gomathml/pkg/parser"
	"github.com/sandrolain/gomathml/pkg/types"
)

func termKey(source string) cache.Key {
	return cache.Key{Grammar: "term", Source: source}
}

func mustParse(t *testing.T, source string) *types.Term {
	t.Helper()
	term, err := parser.ParseTerm(source)
	require.NoError(t, err)
	return term
}

func TestNew(t *testing.T) {
	c := cache.New(10)
	assert.Equal(t, 10, c.Capacity())
	assert.Equal(t, 0, c.Len())
}

func TestNewDefaultCapacity(t *testing.T) {
	assert.Equal(t, 256, cache.New(0).Capacity())
	assert.Equal(t, 256, cache.New(-5).Capacity())
}

func TestSetGet(t *testing.T) {
	c := cache.New(10)
	term := mustParse(t, "1+2")

	c.Set(termKey("1+2"), term)

	got, ok := c.Get(termKey("1+2"))
	require.True(t, ok)
	assert.Same(t, term, got)
	assert.Equal(t, 1, c.Len())
}

func TestGetMiss(t *testing.T) {
	c := cache.New(10)
	got, ok := c.Get(termKey("nope"))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGrammarIsPartOfKey(t *testing.T) {
	c := cache.New(10)
	term := mustParse(t, "x")

	c.Set(cache.Key{Grammar: "term", Source: "x"}, term)

	_, ok := c.Get(cache.Key{Grammar: "bool", Source: "x"})
	assert.False(t, ok)
}

func TestSetReplace(t *testing.T) {
	c := cache.New(10)
	first := mustParse(t, "1")
	second := mustParse(t, "1")

	c.Set(termKey("1"), first)
	c.Set(termKey("1"), second)

	got, ok := c.Get(termKey("1"))
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := cache.New(3)
	for i := 0; i < 3; i++ {
		source := fmt.Sprintf("%d", i)
		c.Set(termKey(source), mustParse(t, source))
	}

	// Touch "0" so that "1" becomes the least recently used.
	_, ok := c.Get(termKey("0"))
	require.True(t, ok)

	c.Set(termKey("3"), mustParse(t, "3"))

	_, ok = c.Get(termKey("1"))
	assert.False(t, ok, "least recently used entry should have been evicted")
	_, ok = c.Get(termKey("0"))
	assert.True(t, ok)
	_, ok = c.Get(termKey("3"))
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestGetOrParse(t *testing.T) {
	c := cache.New(10)

	calls := 0
	parse := func() (*types.Term, error) {
		calls++
		return parser.ParseTerm("1+2")
	}

	first, err := c.GetOrParse(termKey("1+2"), parse)
	require.NoError(t, err)
	second, err := c.GetOrParse(termKey("1+2"), parse)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrParseError(t *testing.T) {
	c := cache.New(10)

	parseErr := errors.New("parse failure")
	_, err := c.GetOrParse(termKey("bad"), func() (*types.Term, error) {
		return nil, parseErr
	})
	assert.ErrorIs(t, err, parseErr)

	// Errors are not cached; the next call parses again.
	term, err := c.GetOrParse(termKey("bad"), func() (*types.Term, error) {
		return mustParse(t, "1"), nil
	})
	require.NoError(t, err)
	assert.NotNil(t, term)
}

func TestInvalidate(t *testing.T) {
	c := cache.New(10)
	c.Set(termKey("1"), mustParse(t, "1"))
	c.Set(termKey("2"), mustParse(t, "2"))

	c.Invalidate(termKey("1"))

	_, ok := c.Get(termKey("1"))
	assert.False(t, ok)
	_, ok = c.Get(termKey("2"))
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())

	// Invalidating a missing key is a no-op.
	c.Invalidate(termKey("missing"))
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := cache.New(10)
	c.Set(termKey("1"), mustParse(t, "1"))
	c.Set(termKey("2"), mustParse(t, "2"))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(termKey("1"))
	assert.False(t, ok)

	// The cache stays usable after Clear.
	c.Set(termKey("3"), mustParse(t, "3"))
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New(16)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				source := fmt.Sprintf("%d+%d", g, i%20)
				_, err := c.GetOrParse(termKey(source), func() (*types.Term, error) {
					return parser.ParseTerm(source)
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
