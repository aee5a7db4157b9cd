package status

import (
	"sync"
	"testing"
)

func TestRegistry_CounterIdentity(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(RollsStarted)
	b := r.Counter(RollsStarted)
	if a != b {
		t.Fatal("Counter must return the same pointer for a name")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected 3, got %d", b.Load())
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter(RollsCompleted).Add(2)
	r.Label(LastFace).Store("17")
	r.Label(Phase)

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Expected 3 metrics, got %v", snap)
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Name > snap[i].Name {
			t.Fatalf("Snapshot not sorted: %v", snap)
		}
	}
	values := map[string]string{}
	for _, m := range snap {
		values[m.Name] = m.Value
	}
	if values[RollsCompleted] != "2" || values[LastFace] != "17" || values[Phase] != "" {
		t.Errorf("Unexpected values %v", values)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Counter(Frames).Add(1)
				r.Label(LastReason).Store("quiet")
			}
		}()
	}
	wg.Wait()
	if got := r.Counter(Frames).Load(); got != 2000 {
		t.Errorf("Expected 2000, got %d", got)
	}
}
