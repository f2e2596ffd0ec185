package service

import "testing"

func TestBonusPoints(t *testing.T) {
	tests := []struct {
		name  string
		grade int
		want  int
	}{
		{"grade 5", 5, 3},
		{"grade 4", 4, 2},
		{"grade 3", 3, 1},
		{"grade 2", 2, 0},
		{"grade 1", 1, 0},
		{"grade 0", 0, 0},
		{"grade above scale", 10, 0},
		{"negative grade", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BonusPoints(tt.grade); got != tt.want {
				t.Errorf("BonusPoints(%d) = %d, want %d", tt.grade, got, tt.want)
			}
		})
	}
}
