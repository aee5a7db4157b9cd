package engine

import (
	"testing"
	"time"
)

func TestScheduler_RunDueOrder(t *testing.T) {
	s := NewScheduler()
	base := time.Unix(0, 0)
	var order []int

	s.Schedule(1, base.Add(30*time.Millisecond), func(time.Time) { order = append(order, 3) })
	s.Schedule(1, base.Add(10*time.Millisecond), func(time.Time) { order = append(order, 1) })
	s.Schedule(2, base.Add(10*time.Millisecond), func(time.Time) { order = append(order, 2) })
	s.Schedule(2, base.Add(time.Second), func(time.Time) { order = append(order, 99) })

	if ran := s.RunDue(base.Add(5 * time.Millisecond)); ran != 0 {
		t.Fatalf("Expected nothing due, ran %d", ran)
	}
	if ran := s.RunDue(base.Add(30 * time.Millisecond)); ran != 3 {
		t.Fatalf("Expected 3 due tasks, ran %d", ran)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, order)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 pending task, got %d", s.Len())
	}
}

func TestScheduler_CancelSession(t *testing.T) {
	s := NewScheduler()
	base := time.Unix(0, 0)
	fired := map[SessionID]int{}

	for i := 0; i < 3; i++ {
		s.Schedule(1, base, func(time.Time) { fired[1]++ })
	}
	s.Schedule(2, base, func(time.Time) { fired[2]++ })

	if n := s.CancelSession(1); n != 3 {
		t.Fatalf("Expected 3 cancelled, got %d", n)
	}
	if s.Pending(1) != 0 || s.Pending(2) != 1 {
		t.Fatalf("Unexpected pending counts: s1=%d s2=%d", s.Pending(1), s.Pending(2))
	}

	s.RunDue(base)
	if fired[1] != 0 {
		t.Errorf("Cancelled session fired %d times", fired[1])
	}
	if fired[2] != 1 {
		t.Errorf("Expected session 2 to fire once, got %d", fired[2])
	}
}

func TestScheduler_CancelSingle(t *testing.T) {
	s := NewScheduler()
	base := time.Unix(0, 0)
	fired := false
	id := s.Schedule(1, base, func(time.Time) { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Expected cancel to succeed")
	}
	if s.Cancel(id) {
		t.Error("Second cancel should report false")
	}
	s.RunDue(base)
	if fired {
		t.Error("Cancelled task fired")
	}
}

func TestScheduler_TaskSchedulesTask(t *testing.T) {
	s := NewScheduler()
	base := time.Unix(0, 0)
	count := 0

	s.Schedule(1, base, func(now time.Time) {
		count++
		s.Schedule(1, now, func(time.Time) { count++ })
	})

	if ran := s.RunDue(base); ran != 2 {
		t.Errorf("Expected chained task to run in same call, ran %d", ran)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestScheduler_CancelAll(t *testing.T) {
	s := NewScheduler()
	base := time.Unix(0, 0)
	s.Schedule(1, base, func(time.Time) { t.Error("fired after CancelAll") })
	s.Schedule(2, base, func(time.Time) { t.Error("fired after CancelAll") })

	if n := s.CancelAll(); n != 2 {
		t.Errorf("Expected 2 cancelled, got %d", n)
	}
	s.RunDue(base.Add(time.Hour))
}
