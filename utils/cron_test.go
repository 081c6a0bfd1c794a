package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Tests that un-register works as expected.
func TestCron(t *testing.T) {
	prov := NewCron()
	var called int32
	var id int
	id, _ = prov.AddFunc("@every 1s", func() {
		if 2 == atomic.AddInt32(&called, 1) {
			prov.RemoveFunc(id)
		}
	})

	time.Sleep(4 * time.Second)

	assert.Equal(t, int32(2), atomic.LoadInt32(&called))
}

// Tests interval spec formatting.
func TestEverySeconds(t *testing.T) {
	assert.Equal(t, "@every 5m0s", EverySeconds(300))
	assert.Equal(t, "@every 10s", EverySeconds(10))
}

// Tests that timers fire and could be stopped.
func TestTimer(t *testing.T) {
	prov := NewTimer()
	fired := make(chan bool, 1)
	prov.AfterFunc(10*time.Millisecond, func() {
		fired <- true
	})

	select {
	case <-fired:
	case <-time.After(1 * time.Second):
		t.Fatal("timer did not fire")
	}

	stopped := prov.AfterFunc(1*time.Hour, func() {
		t.Error("stopped timer fired")
	})
	assert.True(t, stopped.Stop())
}
