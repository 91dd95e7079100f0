package palquant

import (
	"container/heap"
	"slices"
)

// clusterQueue is a max-heap on cost. Equal costs pop in creation order.
type clusterQueue []*cluster

func (q clusterQueue) Len() int { return len(q) }

func (q clusterQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost > q[j].cost
	}
	return q[i].id < q[j].id
}

func (q clusterQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *clusterQueue) Push(x any) { *q = append(*q, x.(*cluster)) }

func (q *clusterQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}

// buildTree greedily splits the highest-cost cluster until target clusters
// exist or nothing is left to split. The result is ordered by creation id.
func buildTree(h *histogram, target int) []*cluster {
	if h.len() == 0 || target <= 0 {
		return nil
	}
	all := make([]int, h.len())
	for i := range all {
		all[i] = i
	}
	nextID := 0
	root := newCluster(nextID, all, h.samples)
	nextID++

	var done []*cluster
	q := &clusterQueue{}
	push := func(c *cluster) {
		if c.splittable() {
			heap.Push(q, c)
		} else {
			done = append(done, c)
		}
	}
	push(root)

	for q.Len() > 0 && q.Len()+len(done) < target {
		c := heap.Pop(q).(*cluster)
		a, b := c.split(h.samples, c.principalAxis(h.samples))
		if a == nil {
			c.cost = 0
			done = append(done, c)
			continue
		}
		ca := newCluster(nextID, a, h.samples)
		cb := newCluster(nextID+1, b, h.samples)
		nextID += 2
		push(ca)
		push(cb)
	}

	out := append(done, *q...)
	slices.SortFunc(out, func(a, b *cluster) int { return a.id - b.id })
	return out
}
