// Package pkg is a package that provides utilities for schemalens.
package pkg

// DisjointSet is a union-find over comparable elements with path
// compression and union by rank. Unknown elements are added on first use.
type DisjointSet[T comparable] struct {
	parent map[T]T
	rank   map[T]int
}

// NewDisjointSet creates an empty DisjointSet.
func NewDisjointSet[T comparable]() *DisjointSet[T] {
	return &DisjointSet[T]{
		parent: make(map[T]T),
		rank:   make(map[T]int),
	}
}

// Add registers an element as its own singleton set if unknown.
func (d *DisjointSet[T]) Add(x T) {
	if _, ok := d.parent[x]; !ok {
		d.parent[x] = x
		d.rank[x] = 0
	}
}

// Find returns the representative of x's set.
func (d *DisjointSet[T]) Find(x T) T {
	d.Add(x)

	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}

	// Path compression.
	for d.parent[x] != root {
		d.parent[x], x = root, d.parent[x]
	}

	return root
}

// Union merges the sets containing a and b.
func (d *DisjointSet[T]) Union(a, b T) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}

	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}

	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// Same reports whether a and b are in the same set.
func (d *DisjointSet[T]) Same(a, b T) bool {
	return d.Find(a) == d.Find(b)
}

// Sets returns the current partition as representative -> members.
func (d *DisjointSet[T]) Sets() map[T][]T {
	sets := make(map[T][]T)
	for x := range d.parent {
		root := d.Find(x)
		sets[root] = append(sets[root], x)
	}

	return sets
}
