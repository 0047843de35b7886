package rng

// Script is a Source that replays fixed sequences. Tests use it to pin the
// exact values the board draws.
type Script struct {
	// Ints is consumed one value per IntN call. Values are returned as-is;
	// callers are responsible for keeping them inside the bounds they expect.
	Ints []int

	// Perms is consumed one slice per Perm call.
	Perms [][]int
}

// IntN pops the next scripted value. It panics when the script runs dry,
// which in a test reads as "drew more values than expected".
func (s *Script) IntN(low, high int) int {
	if len(s.Ints) == 0 {
		panic("rng: scripted int sequence exhausted")
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v
}

// Perm pops the next scripted permutation.
func (s *Script) Perm(n int) []int {
	if len(s.Perms) == 0 {
		panic("rng: scripted perm sequence exhausted")
	}
	p := s.Perms[0]
	s.Perms = s.Perms[1:]
	return p
}
