// Package router implements the route tree shared by every Via app: an
// insert-only tree of segment patterns with ordered siblings, generic over
// the route payload so it knows nothing about HTTP.
package router

// node is one vertex of the route tree. Children are stored as indices
// into the router's node arena, in insertion order.
type node[T any] struct {
	pattern  Pattern
	children []int
	route    *T
}

// Router owns the node arena. Index 0 is always the root node and node
// indices are stable for the lifetime of the router: nodes are never
// removed and patterns never mutate. Registration happens in a distinct
// build phase; afterwards the tree is read-only and safe to share across
// request goroutines.
type Router[T any] struct {
	nodes []node[T]
}

// Route is a cursor over one node, handed out during registration.
type Route[T any] struct {
	router *Router[T]
	key    int
}

// New returns a router containing only the root node.
func New[T any]() *Router[T] {
	return &Router[T]{
		nodes: []node[T]{{pattern: Pattern{Kind: Root}}},
	}
}

// At walks the tree from the root along the segments of path, creating
// nodes for segments that do not exist yet, and returns a cursor over the
// terminal node. Inserting the same path twice folds into the same nodes.
func (r *Router[T]) At(path string) Route[T] {
	return Route[T]{router: r, key: r.insert(0, Patterns(path))}
}

func (r *Router[T]) insert(key int, patterns []Pattern) int {
	for _, pattern := range patterns {
		// A wildcard consumes the rest of the path, so descending past one
		// is meaningless. Inserting beneath it returns the wildcard itself.
		if r.nodes[key].pattern.Kind == Wildcard {
			return key
		}

		next := -1
		for _, child := range r.nodes[key].children {
			if r.nodes[child].pattern == pattern {
				next = child
				break
			}
		}
		if next == -1 {
			next = len(r.nodes)
			r.nodes = append(r.nodes, node[T]{pattern: pattern})
			r.nodes[key].children = append(r.nodes[key].children, next)
		}
		key = next
	}
	return key
}

// Len reports how many nodes the tree holds, including the root.
func (r *Router[T]) Len() int {
	return len(r.nodes)
}

// At continues walking from this node, so nested registration composes:
// r.At("/articles").At("/:id") addresses the same node as
// r.At("/articles/:id").
func (e Route[T]) At(path string) Route[T] {
	return Route[T]{
		router: e.router,
		key:    e.router.insert(e.key, Patterns(path)),
	}
}

// Pattern returns the pattern of the node under the cursor.
func (e Route[T]) Pattern() Pattern {
	return e.router.nodes[e.key].pattern
}

// Param returns the capture name of the node if it has a Dynamic or
// Wildcard pattern.
func (e Route[T]) Param() (string, bool) {
	pattern := e.router.nodes[e.key].pattern
	if pattern.Kind == Dynamic || pattern.Kind == Wildcard {
		return pattern.Name, true
	}
	return "", false
}

// Value returns the route payload stored on the node, or nil if none has
// been attached yet.
func (e Route[T]) Value() *T {
	return e.router.nodes[e.key].route
}

// GetOrInsertWith returns the route payload stored on the node, calling f
// to create it on first use.
func (e Route[T]) GetOrInsertWith(f func() T) *T {
	n := &e.router.nodes[e.key]
	if n.route == nil {
		value := f()
		n.route = &value
	}
	return n.route
}
