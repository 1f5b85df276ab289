package scoring

// Ladder is an ascending table of escalating prices. Occurrences past the
// end of the table are charged the last price.
type Ladder []int

// Cost returns the price of the given zero-based occurrence.
func (l Ladder) Cost(occurrence int) int {
	if len(l) == 0 {
		return 0
	}
	if occurrence < 0 {
		occurrence = 0
	}
	if occurrence > len(l)-1 {
		occurrence = len(l) - 1
	}
	return l[occurrence]
}

// Total returns the cumulative price of the first count occurrences.
func (l Ladder) Total(count int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += l.Cost(i)
	}
	return total
}

func (l Ladder) ascending() bool {
	for i := 1; i < len(l); i++ {
		if l[i] < l[i-1] {
			return false
		}
	}
	return true
}
