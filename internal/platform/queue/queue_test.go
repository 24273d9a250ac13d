package queue

import (
	"sync"
	"testing"
)

func TestDrainPreservesOrder(t *testing.T) {
	var q Queue[int]
	q.Push(1, 2)
	q.Push(3)
	got := q.Drain()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
	if q.Len() != 0 || len(q.Drain()) != 0 {
		t.Fatalf("expected queue to be empty after drain")
	}
}

func TestConcurrentPush(t *testing.T) {
	var q Queue[int]
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(n)
			}
		}(i)
	}
	wg.Wait()
	if got := len(q.Drain()); got != 800 {
		t.Fatalf("expected 800 items, got %d", got)
	}
}
