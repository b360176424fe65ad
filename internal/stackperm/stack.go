package stackperm

type intStack struct {
	store []int
}

func (s *intStack) Push(v int) {
	s.store = append(s.store, v)
}

func (s *intStack) Pop() int {
	n := len(s.store) - 1
	if n < 0 {
		return 0
	}
	out := s.store[n]
	s.store = s.store[:n]
	return out
}

// Peek returns the top of the stack and false if the stack is empty.
func (s *intStack) Peek() (int, bool) {
	n := len(s.store) - 1
	if n < 0 {
		return 0, false
	}
	return s.store[n], true
}

func (s *intStack) Len() int { return len(s.store) }
