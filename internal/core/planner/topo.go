package planner

// topologicalSort orders courses with Kahn's algorithm over the prerequisite
// edges that fall within the requested subset. Ties are broken by input
// order, so the result is deterministic. Nodes on a prerequisite cycle never
// reach in-degree zero and are silently dropped from the output; cycles are
// not detected here.
func topologicalSort(courses []string, prerequisites map[string][]string) []string {
	inSubset := make(map[string]bool, len(courses))
	for _, course := range courses {
		inSubset[course] = true
	}

	inDegree := make(map[string]int, len(courses))
	for _, course := range courses {
		inDegree[course] = 0
	}
	for _, course := range courses {
		for _, prereq := range prerequisites[course] {
			if inSubset[prereq] {
				inDegree[course]++
			}
		}
	}

	var queue []string
	for _, course := range courses {
		if inDegree[course] == 0 {
			queue = append(queue, course)
		}
	}

	var order []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, course := range courses {
			for _, prereq := range prerequisites[course] {
				if prereq != current {
					continue
				}
				inDegree[course]--
				if inDegree[course] == 0 {
					queue = append(queue, course)
				}
			}
		}
	}

	return order
}
