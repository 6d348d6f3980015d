package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMap_SerializesSameKey(t *testing.T) {
	m := New()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			unlock := m.Lock("P00001")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestMap_DifferentKeysDoNotBlock(t *testing.T) {
	m := New()

	unlockA := m.Lock("P00001")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock("P00002")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestMap_EntriesReleased(t *testing.T) {
	m := New()

	unlock := m.Lock("P00001")
	unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}
