package game

import (
	"errors"
	"math"
)

// ErrInvalidLevel is returned when a level below 1 reaches the score calculator
var ErrInvalidLevel = errors.New("level must be at least 1")

// Points maps an accuracy percentage to a point award under the tiered rule
// for the player's level:
//
//	level 1:  accuracy > 75 earns 100; 50..75 earns floor((accuracy-50)*4)
//	level 2+: accuracy > 85 earns 100; 50..85 earns floor((accuracy-50)*2)
//
// Accuracy below 50 earns nothing at any level.
func Points(accuracy float64, level int) (int, error) {
	if level < 1 {
		return 0, ErrInvalidLevel
	}

	threshold, multiplier := 75.0, 4.0
	if level >= 2 {
		threshold, multiplier = 85.0, 2.0
	}

	switch {
	case accuracy > threshold:
		return 100, nil
	case accuracy >= 50:
		return int(math.Floor((accuracy - 50) * multiplier)), nil
	default:
		return 0, nil
	}
}
