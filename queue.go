package sview

import "sync"

// pending is a submitted cell update waiting for the next merge cycle.
type pending struct {
	key     cellKey
	content ownedPicture
	overlay ownedPicture
	flags   Flags
	pitch   int
}

// release releases whatever pictures the record still owns.
func (r *pending) release() {
	r.content.release()
	r.overlay.release()
}

// pendingQueue is the only state shared between producers and the render
// goroutine. Both push and drain hold the lock for O(1) work.
type pendingQueue struct {
	mu    sync.Mutex
	items []*pending
	limit int // 0 means unbounded
}

// push appends r at the tail. If the queue is bounded and full, the oldest
// record is removed and returned so the caller can release it unlocked.
func (q *pendingQueue) push(r *pending) (dropped *pending) {
	q.mu.Lock()
	if q.limit > 0 && len(q.items) >= q.limit {
		dropped = q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
	}
	q.items = append(q.items, r)
	q.mu.Unlock()
	return dropped
}

// drain detaches the whole queue by swapping it with an empty slice and
// returns the detached records in submission order.
func (q *pendingQueue) drain() []*pending {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// len returns the number of queued records.
func (q *pendingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
