package scene

// Graph is the flat, ordered scene the renderer walks each frame
// Insertion order is draw order for renderables without depth testing
// Not safe for concurrent use; owned by the game loop goroutine
type Graph struct {
	nodes []Renderable
	index map[Renderable]int
}

// NewGraph creates an empty scene graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]Renderable, 0, 64),
		index: make(map[Renderable]int),
	}
}

// Add appends r; adding the same renderable twice is a no-op
func (g *Graph) Add(r Renderable) {
	if r == nil {
		return
	}
	if _, ok := g.index[r]; ok {
		return
	}
	g.index[r] = len(g.nodes)
	g.nodes = append(g.nodes, r)
}

// Remove deletes r preserving the order of the remaining nodes
func (g *Graph) Remove(r Renderable) {
	idx, ok := g.index[r]
	if !ok {
		return
	}
	copy(g.nodes[idx:], g.nodes[idx+1:])
	g.nodes[len(g.nodes)-1] = nil
	g.nodes = g.nodes[:len(g.nodes)-1]
	delete(g.index, r)
	for i := idx; i < len(g.nodes); i++ {
		g.index[g.nodes[i]] = i
	}
}

// Contains reports whether r is in the graph
func (g *Graph) Contains(r Renderable) bool {
	_, ok := g.index[r]
	return ok
}

// Len returns the node count
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Each visits nodes in insertion order
func (g *Graph) Each(fn func(Renderable)) {
	for _, n := range g.nodes {
		fn(n)
	}
}
