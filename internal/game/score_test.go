package game

import (
	"errors"
	"testing"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		level    int
		want     int
	}{
		{
			name:     "level 1 above threshold",
			accuracy: 90,
			level:    1,
			want:     100,
		},
		{
			name:     "level 1 just above threshold",
			accuracy: 75.01,
			level:    1,
			want:     100,
		},
		{
			name:     "level 1 exactly at threshold hits formula",
			accuracy: 75,
			level:    1,
			want:     100,
		},
		{
			name:     "level 1 mid tier",
			accuracy: 60,
			level:    1,
			want:     40,
		},
		{
			name:     "level 1 exactly 50",
			accuracy: 50,
			level:    1,
			want:     0,
		},
		{
			name:     "level 1 just below 50",
			accuracy: 49.99,
			level:    1,
			want:     0,
		},
		{
			name:     "level 1 zero accuracy",
			accuracy: 0,
			level:    1,
			want:     0,
		},
		{
			name:     "level 2 above threshold",
			accuracy: 90,
			level:    2,
			want:     100,
		},
		{
			name:     "level 2 exactly at threshold hits formula",
			accuracy: 85,
			level:    2,
			want:     70,
		},
		{
			name:     "level 2 mid tier",
			accuracy: 60,
			level:    2,
			want:     20,
		},
		{
			name:     "level 2 below 50",
			accuracy: 40,
			level:    2,
			want:     0,
		},
		{
			name:     "level 3 uses level 2 tiers",
			accuracy: 80,
			level:    3,
			want:     60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Points(tt.accuracy, tt.level)
			if err != nil {
				t.Fatalf("Points(%v, %d) error = %v", tt.accuracy, tt.level, err)
			}
			if got != tt.want {
				t.Errorf("Points(%v, %d) = %d, want %d", tt.accuracy, tt.level, got, tt.want)
			}
		})
	}
}

func TestPointsInvalidLevel(t *testing.T) {
	for _, level := range []int{0, -1, -100} {
		_, err := Points(90, level)
		if !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Points(90, %d) error = %v, want ErrInvalidLevel", level, err)
		}
	}
}
