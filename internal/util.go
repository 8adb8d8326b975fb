package internal

// WalkBack follows cameFrom links from goal for at most steps moves and returns the
// visited nodes oldest first, goal last. With a g-score consistent chain of length
// steps the first element is the search start. A chain that ends early yields the
// shorter tail it did reach.
func WalkBack[NodeType comparable](cameFrom map[NodeType]NodeType, goal NodeType, steps int) []NodeType {
	if steps < 0 {
		steps = 0
	}
	nodes := make([]NodeType, steps+1)
	i := steps
	nodes[i] = goal
	for i > 0 {
		previous, ok := cameFrom[nodes[i]]
		if !ok {
			break
		}
		i--
		nodes[i] = previous
	}
	return nodes[i:]
}
