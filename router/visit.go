package router

// Found is one matched node in the order the tree was visited.
type Found[T any] struct {
	// Exact reports whether the node is the terminus of the matched path.
	// Wildcard nodes are always exact since they consume the remaining
	// segments by definition.
	Exact bool

	// Param is the capture name when the node has a Dynamic or Wildcard
	// pattern, otherwise "".
	Param string

	// Start and End delimit the captured bytes in the visited path.
	// Start is -1 when the node captures nothing. End is -1 when the
	// capture extends to the end of the path (wildcard).
	Start int
	End   int

	// Route is the payload attached to the node, or nil.
	Route *T
}

// Visit matches path against the tree and returns every matching node.
//
// The walk is breadth-first by depth: ancestors precede descendants, and
// within a depth siblings appear in the order they were inserted, so
// applications that declare a static route before a dynamic sibling get
// first-declared-wins ordering. All siblings that match a segment are
// yielded, and the walk never descends past a wildcard.
func (r *Router[T]) Visit(path string) []Found[T] {
	spans := Split(path)
	results := make([]Found[T], 0, 8)

	root := &r.nodes[0]
	results = append(results, Found[T]{
		Exact: len(spans) == 0,
		Start: -1,
		End:   -1,
		Route: root.route,
	})

	// queue holds the child index slices to match against the current
	// segment, one slice per node that matched the previous segment.
	queue := [][]int{root.children}

	for i, span := range spans {
		last := i == len(spans)-1
		segment := path[span.Start:span.End]
		var next [][]int

		for _, branch := range queue {
			for _, key := range branch {
				n := &r.nodes[key]
				switch n.pattern.Kind {
				case Static:
					if n.pattern.Name != segment {
						continue
					}
					results = append(results, Found[T]{
						Exact: last,
						Start: -1,
						End:   -1,
						Route: n.route,
					})
					next = append(next, n.children)
				case Dynamic:
					results = append(results, Found[T]{
						Exact: last,
						Param: n.pattern.Name,
						Start: span.Start,
						End:   span.End,
						Route: n.route,
					})
					next = append(next, n.children)
				case Wildcard:
					results = append(results, Found[T]{
						Exact: true,
						Param: n.pattern.Name,
						Start: span.Start,
						End:   -1,
						Route: n.route,
					})
				}
			}
		}

		queue = next
		if len(queue) == 0 {
			break
		}
	}

	// Any wildcard reachable after the final segment still matches, with
	// an empty capture anchored at the end of the path.
	for _, branch := range queue {
		for _, key := range branch {
			n := &r.nodes[key]
			if n.pattern.Kind == Wildcard {
				results = append(results, Found[T]{
					Exact: true,
					Param: n.pattern.Name,
					Start: len(path),
					End:   -1,
					Route: n.route,
				})
			}
		}
	}

	return results
}
