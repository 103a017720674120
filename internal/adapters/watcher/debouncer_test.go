package watcher_test

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/inkcache/internal/adapters/watcher"
)

func TestDebouncer_Trigger_Single(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := watcher.NewDebouncer(100*time.Millisecond, func() { calls.Add(1) })

		d.Trigger()

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDebouncer_Trigger_Coalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := watcher.NewDebouncer(100*time.Millisecond, func() { calls.Add(1) })

		// Each trigger restarts the window.
		for range 5 {
			d.Trigger()
			time.Sleep(60 * time.Millisecond)
		}
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := watcher.NewDebouncer(time.Second, func() { calls.Add(1) })

		d.Flush()
		assert.Equal(t, int32(0), calls.Load(), "flush without pending change")

		d.Trigger()
		d.Flush()
		assert.Equal(t, int32(1), calls.Load())

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load(), "flushed change must not fire again")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := watcher.NewDebouncer(100*time.Millisecond, func() { calls.Add(1) })

		d.Trigger()
		d.Stop()

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Trigger()
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Trigger()
		d.Flush()
	})
}
