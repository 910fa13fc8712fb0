package frame

import "time"

type ID uint64

// Callback receives the timestamp of the display refresh it runs in.
type Callback func(ts time.Duration)

// Platform schedules callbacks for the next display refresh.
type Platform interface {
	RequestFrame(cb Callback) ID
	CancelFrame(id ID)
}

type entry struct {
	id ID
	cb Callback
}

// Queue is a Platform driven by its owner: every Dispatch runs the
// callbacks requested before it. Callbacks requested during a Dispatch
// wait for the next one.
type Queue struct {
	next    ID
	pending []entry
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) RequestFrame(cb Callback) ID {
	q.next++
	q.pending = append(q.pending, entry{id: q.next, cb: cb})
	return q.next
}

func (q *Queue) CancelFrame(id ID) {
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Dispatch runs the due callbacks with ts and returns how many ran.
func (q *Queue) Dispatch(ts time.Duration) int {
	due := q.pending
	q.pending = nil
	for _, e := range due {
		e.cb(ts)
	}
	return len(due)
}

func (q *Queue) Pending() int { return len(q.pending) }
