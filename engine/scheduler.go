package engine

import "time"

// TaskID identifies a scheduled task
type TaskID uint64

type scheduledTask struct {
	id      TaskID
	session SessionID
	due     time.Time
	fn      func(now time.Time)
}

// Scheduler holds deferred callbacks driven by the frame loop
// Tasks are keyed by session so an aborted session cannot fire into a newer one
// Not safe for concurrent use; owned by the frame loop
type Scheduler struct {
	tasks  []scheduledTask
	nextID TaskID
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to run at the first RunDue call with now >= due
func (s *Scheduler) Schedule(session SessionID, due time.Time, fn func(now time.Time)) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{id: s.nextID, session: session, due: due, fn: fn})
	return s.nextID
}

// Cancel removes one task, returns false if it already ran or was cancelled
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelSession removes every task of session, returns the count removed
func (s *Scheduler) CancelSession(session SessionID) int {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.session == session {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
	return removed
}

// CancelAll drops every pending task
func (s *Scheduler) CancelAll() int {
	n := len(s.tasks)
	clear(s.tasks)
	s.tasks = s.tasks[:0]
	return n
}

// Pending returns the number of tasks for session
func (s *Scheduler) Pending(session SessionID) int {
	n := 0
	for _, t := range s.tasks {
		if t.session == session {
			n++
		}
	}
	return n
}

// Len returns all pending tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// RunDue runs due tasks earliest first, ties in scheduling order
// A task may schedule or cancel others; newly due tasks run in the same call
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.due.After(now) {
				continue
			}
			if idx < 0 || t.due.Before(s.tasks[idx].due) {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}
		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		t.fn(now)
		ran++
	}
}
