package rat

import "testing"

func TestWeightedSetFloorLookup(t *testing.T) {
	var s WeightedSet[string]
	s.Add(10, "a")
	s.Add(20, "b")
	s.Add(70, "c")

	if s.Total() != 100 {
		t.Fatalf("Total() = %d, want 100", s.Total())
	}
	tests := []struct {
		n    int
		want string
	}{
		{0, "a"},
		{9, "a"},
		{10, "b"},
		{29, "b"},
		{30, "c"},
		{99, "c"},
	}
	for _, tc := range tests {
		if got := s.Draw(tc.n); got != tc.want {
			t.Errorf("Draw(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestWeightedSetSkipsZeroWeight(t *testing.T) {
	var s WeightedSet[string]
	s.Add(0, "zero")
	s.Add(5, "a")
	s.Add(0, "also-zero")
	s.Add(5, "b")

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got := s.Draw(4); got != "a" {
		t.Errorf("Draw(4) = %q, want %q", got, "a")
	}
	if got := s.Draw(5); got != "b" {
		t.Errorf("Draw(5) = %q, want %q", got, "b")
	}
}

func TestWeightedSetReset(t *testing.T) {
	var s WeightedSet[int]
	s.Add(3, 1)
	s.Add(4, 2)
	s.Reset()
	if s.Total() != 0 || s.Len() != 0 {
		t.Errorf("after Reset: Total() = %d, Len() = %d, want 0, 0", s.Total(), s.Len())
	}
	s.Add(2, 7)
	if got := s.Draw(1); got != 7 {
		t.Errorf("Draw(1) after Reset = %d, want 7", got)
	}
}

func TestWeightedSetDrawPanics(t *testing.T) {
	tests := []struct {
		name string
		set  func() *WeightedSet[int]
		n    int
	}{
		{"empty", func() *WeightedSet[int] { return &WeightedSet[int]{} }, 0},
		{"negative", func() *WeightedSet[int] {
			s := &WeightedSet[int]{}
			s.Add(5, 1)
			return s
		}, -1},
		{"past total", func() *WeightedSet[int] {
			s := &WeightedSet[int]{}
			s.Add(5, 1)
			return s
		}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Draw(%d) did not panic", tc.n)
				}
			}()
			tc.set().Draw(tc.n)
		})
	}
}
