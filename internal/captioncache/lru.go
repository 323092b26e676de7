package captioncache

// node is an entry in a shard's recency list.
type node struct {
	key        Key
	value      Bitmap
	prev, next *node
}

// list is a doubly-linked recency list; head is the most recently used.
// It is guarded by the owning shard's mutex.
type list struct {
	head, tail *node
	len        int
}

func (l *list) pushFront(k Key, v Bitmap) *node {
	n := &node{key: k, value: v}
	l.linkFront(n)
	return n
}

func (l *list) moveToFront(n *node) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

// removeOldest unlinks and returns the least recently used node, or nil.
func (l *list) removeOldest() *node {
	n := l.tail
	if n != nil {
		l.unlink(n)
	}
	return n
}

func (l *list) linkFront(n *node) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *list) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
