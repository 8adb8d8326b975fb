package gridastar

import "container/heap"

// openItem is a frontier entry. Sequence records insertion order and breaks f ties,
// so the earliest discovered of equally scored cells is selected first.
type openItem struct {
	Coordinate   Coordinate
	FCost        int
	Sequence     uint64
	IndexInQueue int
}

type openQueue []*openItem

func (queue openQueue) Len() int { return len(queue) }
func (queue openQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue openQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *openQueue) Push(x any) {
	item := x.(*openItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *openQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	item.IndexInQueue = -1
	return item
}

// openSet is the search frontier: a heap keyed by (f, insertion order) plus a
// coordinate index for membership, re-keying and arbitrary removal.
type openSet struct {
	queue    openQueue
	items    map[Coordinate]*openItem
	sequence uint64
}

func newOpenSet() *openSet {
	return &openSet{items: make(map[Coordinate]*openItem)}
}

func (s *openSet) Len() int { return s.queue.Len() }

func (s *openSet) Contains(c Coordinate) bool {
	_, ok := s.items[c]
	return ok
}

// Push inserts c. A coordinate already present is left untouched.
func (s *openSet) Push(c Coordinate, f int) {
	if s.Contains(c) {
		return
	}
	item := &openItem{Coordinate: c, FCost: f, Sequence: s.sequence}
	s.sequence++
	heap.Push(&s.queue, item)
	s.items[c] = item
}

// Update re-keys c with a new f. Its insertion order is kept.
func (s *openSet) Update(c Coordinate, f int) {
	item, ok := s.items[c]
	if !ok {
		return
	}
	item.FCost = f
	heap.Fix(&s.queue, item.IndexInQueue)
}

// Min returns the minimum-f coordinate without removing it.
func (s *openSet) Min() (Coordinate, bool) {
	if s.queue.Len() == 0 {
		return Coordinate{}, false
	}
	return s.queue[0].Coordinate, true
}

func (s *openSet) Remove(c Coordinate) bool {
	item, ok := s.items[c]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, item.IndexInQueue)
	delete(s.items, c)
	return true
}

func (s *openSet) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, len(s.items))
	for c := range s.items {
		out = append(out, c)
	}
	return out
}
