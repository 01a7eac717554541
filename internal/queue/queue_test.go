package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsInOrder(t *testing.T) {
	q := New()
	defer q.Close()

	var got []int
	var last <-chan struct{}
	for i := 0; i < 100; i++ {
		i := i
		last = q.Submit(func() { got = append(got, i) })
	}
	<-last

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestQueueNeverInterleaves(t *testing.T) {
	q := New()
	defer q.Close()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-q.Submit(func() {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				running--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestQueueCloseDrainsPending(t *testing.T) {
	q := New()

	release := make(chan struct{})
	q.Submit(func() { <-release })

	ran := false
	done := q.Submit(func() { ran = true })

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()
	close(release)

	<-closed
	<-done
	assert.True(t, ran)
}

func TestQueueSubmitAfterClose(t *testing.T) {
	q := New()
	q.Close()

	ran := false
	select {
	case <-q.Submit(func() { ran = true }):
	case <-time.After(time.Second):
		t.Fatal("submit after close should return a closed channel")
	}
	assert.False(t, ran)

	// a second Close is harmless
	q.Close()
}
