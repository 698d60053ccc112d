package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoop_SerialisesCallbacksAndDo(t *testing.T) {
	loop := NewLoop(Real{})
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		loop.AfterFunc(time.Millisecond, func() {
			defer wg.Done()
			counter++
		})
		go func() {
			defer wg.Done()
			loop.Do(func() { counter++ })
		}()
	}
	wg.Wait()

	loop.Do(func() {
		assert.Equal(t, 100, counter)
	})
}

func TestLoop_UsesWrappedClock(t *testing.T) {
	v := NewVirtual(epoch)
	loop := NewLoop(v)
	fired := false
	loop.AfterFunc(time.Second, func() { fired = true })

	v.Advance(time.Second)
	assert.True(t, fired)
	assert.Equal(t, epoch.Add(time.Second), loop.Now())
}
