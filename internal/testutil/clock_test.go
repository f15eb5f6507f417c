package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResettableClock_Sequence(t *testing.T) {
	c := NewResettableClock(0)
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestResettableClock_Reset(t *testing.T) {
	c := NewResettableClock(10)
	c.Next()
	c.Next()

	c.Reset()
	assert.Equal(t, int64(10), c.Current())
	assert.Equal(t, int64(11), c.Next())
}

func TestResettableClock_Concurrent(t *testing.T) {
	c := NewResettableClock(0)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Next()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.Current())
}

func TestConstantRunID(t *testing.T) {
	assert.Equal(t, "abc", ConstantRunID("abc").Generate())
	assert.Equal(t, DefaultRunID, ConstantRunID("").Generate())
}
