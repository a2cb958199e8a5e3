package simulation

import "container/heap"

// EventQueue is a min-heap of events ordered by timestamp. Events with
// equal timestamps come out in insertion order, so a scenario behaves the
// same on every run.
type EventQueue struct {
	items eventHeap
	seq   int
}

// NewEventQueue creates an EventQueue seeded with the given events.
func NewEventQueue(events []Event) *EventQueue {
	q := &EventQueue{}
	for _, e := range events {
		q.Push(e)
	}
	return q
}

// Push schedules an event.
func (q *EventQueue) Push(e Event) {
	q.seq++
	heap.Push(&q.items, queuedEvent{event: e, seq: q.seq})
}

// Pop removes and returns the earliest event, or nil if the queue is empty.
func (q *EventQueue) Pop() Event {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop(&q.items).(queuedEvent).event
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.items) }

type queuedEvent struct {
	event Event
	seq   int
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Timestamp() != h[j].event.Timestamp() {
		return h[i].event.Timestamp() < h[j].event.Timestamp()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(queuedEvent)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
