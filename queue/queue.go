package queue

import "sync"

// Queue is a FIFO that accepts pushes from any goroutine.
type Queue[T any] struct {
	mutex sync.Mutex
	items []T
}

func (q *Queue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.items)
}

// Pop returns the oldest item, or false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

func (q *Queue[T]) Push(items ...T) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.items = append(q.items, items...)
}

func New[T any](maybeSize ...int) *Queue[T] {
	size := 0
	if len(maybeSize) > 0 {
		size = maybeSize[0]
	}
	return &Queue[T]{items: make([]T, 0, size)}
}
