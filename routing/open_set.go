package routing

import (
	"container/heap"
	"sort"

	. "github.com/ttpr0/go-planner/util"
)

//*******************************************
// open set
//*******************************************

// OpenSet holds the frontier ordered by ascending F.
//
// Nodes with equal F leave in insertion order, a node (re-)inserted after an
// equal one is popped after it. At most one node per point is stored.
type OpenSet struct {
	queue _OpenQueue
	index Dict[string, *_OpenItem]
	seq   uint64
}

func NewOpenSet(cap int) *OpenSet {
	return &OpenSet{
		queue: make(_OpenQueue, 0, cap),
		index: NewDict[string, *_OpenItem](cap),
	}
}

func (self *OpenSet) Length() int {
	return len(self.queue)
}
func (self *OpenSet) Contains(point string) bool {
	return self.index.ContainsKey(point)
}
func (self *OpenSet) Get(point string) (SearchNode, bool) {
	item, ok := self.index[point]
	if !ok {
		return SearchNode{}, false
	}
	return item.node, true
}

// Inserts node, an existing node of the same point is replaced.
func (self *OpenSet) Push(node SearchNode) {
	self.Remove(node.Point)
	item := &_OpenItem{
		node: node,
		seq:  self.seq,
	}
	self.seq += 1
	heap.Push(&self.queue, item)
	self.index[node.Point] = item
}

func (self *OpenSet) Pop() (SearchNode, bool) {
	if len(self.queue) == 0 {
		return SearchNode{}, false
	}
	item := heap.Pop(&self.queue).(*_OpenItem)
	self.index.Delete(item.node.Point)
	return item.node, true
}

func (self *OpenSet) Remove(point string) bool {
	item, ok := self.index[point]
	if !ok {
		return false
	}
	heap.Remove(&self.queue, item.pos)
	self.index.Delete(point)
	return true
}

// Returns the stored nodes in the order they would be popped.
func (self *OpenSet) Nodes() []SearchNode {
	items := make([]*_OpenItem, len(self.queue))
	copy(items, self.queue)
	sort.Slice(items, func(i, j int) bool {
		return _Before(items[i], items[j])
	})
	nodes := make([]SearchNode, len(items))
	for i, item := range items {
		nodes[i] = item.node
	}
	return nodes
}

//*******************************************
// heap
//*******************************************

type _OpenItem struct {
	node SearchNode
	seq  uint64
	pos  int
}

func _Before(a, b *_OpenItem) bool {
	fa, fb := a.node.F(), b.node.F()
	if fa != fb {
		return fa < fb
	}
	return a.seq < b.seq
}

type _OpenQueue []*_OpenItem

func (self _OpenQueue) Len() int           { return len(self) }
func (self _OpenQueue) Less(i, j int) bool { return _Before(self[i], self[j]) }
func (self _OpenQueue) Swap(i, j int) {
	self[i], self[j] = self[j], self[i]
	self[i].pos = i
	self[j].pos = j
}

func (self *_OpenQueue) Push(x any) {
	item := x.(*_OpenItem)
	item.pos = len(*self)
	*self = append(*self, item)
}

func (self *_OpenQueue) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.pos = -1
	*self = old[:n-1]
	return item
}
