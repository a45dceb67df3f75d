package words

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrNoWords is returned when the eligible word set is empty
var ErrNoWords = errors.New("no eligible practice words")

// Selector picks target words from the built-in sound lists plus a player's
// custom words
type Selector struct{}

// NewSelector creates a word selector
func NewSelector() *Selector {
	return &Selector{}
}

// Pick returns one uniform-random word from the built-in words matching the
// selected sounds plus the custom words. With no sounds selected every
// built-in word is eligible; unknown sound tags that match nothing fall back
// to the full built-in list
func (s *Selector) Pick(sounds []string, customWords []string) (string, error) {
	eligible := ForSounds(sounds)
	if len(eligible) == 0 {
		eligible = allWords()
	}
	eligible = append(eligible, customWords...)

	return randomElement(eligible)
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", ErrNoWords
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
