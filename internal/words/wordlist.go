package words

import "sort"

// Built-in practice words grouped by the consonant sound they exercise
var soundWordLists = map[string][]string{
	"p": {"Pencil", "Paper", "Park", "Pink", "Pillow", "Happy", "Apple", "Capture", "Monkey", "Ship"},
	"b": {"Book", "Ball", "Balloon", "Banana", "Basket", "Rabbit", "Robot", "Cabbage", "About", "Crab"},
	"t": {"Table", "Turtle", "Tiger", "Talk", "Taxi", "Water", "Button", "Kettle", "Battery", "Cat"},
	"d": {"Dog", "Door", "Desk", "Dance", "Dish", "Hidden", "Ladder", "Garden", "Shadow", "Bird"},
	"k": {"King", "Kite", "Key", "Kitchen", "Kangaroo", "Monkey", "Cookie", "Pocket", "Basket", "Bark"},
}

// Sounds returns the available sound tags in stable order
func Sounds() []string {
	sounds := make([]string, 0, len(soundWordLists))
	for s := range soundWordLists {
		sounds = append(sounds, s)
	}
	sort.Strings(sounds)
	return sounds
}

// IsSound reports whether a tag names a built-in sound list
func IsSound(tag string) bool {
	_, ok := soundWordLists[tag]
	return ok
}

// ForSounds returns the built-in words for the given sound tags. Unknown tags
// are skipped; no tags means every built-in word
func ForSounds(sounds []string) []string {
	if len(sounds) == 0 {
		return allWords()
	}

	var out []string
	for _, s := range sounds {
		out = append(out, soundWordLists[s]...)
	}
	return out
}

func allWords() []string {
	var out []string
	for _, list := range soundWordLists {
		out = append(out, list...)
	}
	return out
}
