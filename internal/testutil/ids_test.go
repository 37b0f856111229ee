package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunIDs_InOrder(t *testing.T) {
	gen := NewFixedRunIDs("run-1", "run-2")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
}

func TestFixedRunIDs_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedRunIDs("only")
	gen.Generate()

	assert.PanicsWithValue(t, "FixedRunIDs: all ids exhausted", func() { gen.Generate() })
}

func TestFixedRunIDs_ThreadSafe(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = string(rune('A' + i%26))
	}
	gen := NewFixedRunIDs(ids...)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				gen.Generate()
			}
		}()
	}
	wg.Wait()

	assert.Panics(t, func() { gen.Generate() }, "all 100 ids consumed exactly once")
}
