package plan

import (
	"container/heap"
	"sort"
)

// graph is a task graph with edges from a task to its prerequisites.
// Node indices follow sorted task ID order, so index order is ID order.
type graph struct {
	ids      []string
	index    map[string]int
	requires [][]int // prerequisites, ascending
	enables  [][]int // dependents, ascending
}

func newGraph(tasks map[string][]string) *graph {
	g := &graph{index: make(map[string]int, len(tasks))}
	for id := range tasks {
		g.ids = append(g.ids, id)
	}
	sort.Strings(g.ids)
	for i, id := range g.ids {
		g.index[id] = i
	}

	g.requires = make([][]int, len(g.ids))
	g.enables = make([][]int, len(g.ids))
	for i, id := range g.ids {
		for _, dep := range tasks[id] {
			j, ok := g.index[dep]
			if !ok {
				continue
			}
			g.requires[i] = append(g.requires[i], j)
			g.enables[j] = append(g.enables[j], i)
		}
	}
	for i := range g.ids {
		sort.Ints(g.requires[i])
		sort.Ints(g.enables[i])
	}
	return g
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// order returns a topological order of task IDs, prerequisites first.
// Among ready tasks the smallest ID goes first. ok is false when the graph
// has a cycle; the returned order is then incomplete and must not be used.
func (g *graph) order() (ids []string, ok bool) {
	indeg := make([]int, len(g.ids))
	for i := range g.ids {
		indeg[i] = len(g.requires[i])
	}

	ready := &intMinHeap{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]string, 0, len(g.ids))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, g.ids[n])
		for _, m := range g.enables[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out, len(out) == len(g.ids)
}

// cycle returns one cycle as a path of task IDs that starts and ends with
// the same task, following depends-on edges. The DFS visits tasks and
// prerequisites in ID order, so the witness is stable.
func (g *graph) cycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.ids))
	parent := make([]int, len(g.ids))
	for i := range parent {
		parent[i] = -1
	}

	var found []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.requires[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// back edge u -> v closes v -> ... -> u -> v
				found = append(found, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					found = append(found, cur)
				}
				found = append(found, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range g.ids {
		if color[i] == white && dfs(i) {
			break
		}
	}
	if len(found) == 0 {
		return nil
	}

	path := make([]string, len(found))
	for i, idx := range found {
		path[len(found)-1-i] = g.ids[idx]
	}
	return path
}

// sinks returns tasks no other task depends on, in ID order
func (g *graph) sinks() []string {
	var out []string
	for i, id := range g.ids {
		if len(g.enables[i]) == 0 {
			out = append(out, id)
		}
	}
	return out
}
