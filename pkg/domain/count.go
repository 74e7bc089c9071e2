package domain

// CountExamples returns the total number of examples in the forest,
// focused or not. Hook markers contribute zero.
func CountExamples(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		switch n := n.(type) {
		case *Example, *FocusedExample:
			count++
		case *Group:
			count += CountExamples(n.Children)
		case *FocusedGroup:
			count += CountExamples(n.Children)
		}
	}
	return count
}

// CountGroups returns the total number of groups in the forest,
// focused or not. Hook markers contribute zero.
func CountGroups(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		switch n := n.(type) {
		case *Group:
			count += 1 + CountGroups(n.Children)
		case *FocusedGroup:
			count += 1 + CountGroups(n.Children)
		}
	}
	return count
}
