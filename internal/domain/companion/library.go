package companion

// LibraryOrder returns companions with bookmarked entries first. Each group keeps its
// incoming order. The input slice is not modified.
func LibraryOrder(companions []*Companion) []*Companion {
	ordered := make([]*Companion, 0, len(companions))
	for _, c := range companions {
		if c.Bookmarked {
			ordered = append(ordered, c)
		}
	}
	for _, c := range companions {
		if !c.Bookmarked {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
