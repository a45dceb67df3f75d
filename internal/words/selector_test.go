package words

import (
	"testing"
)

func TestForSounds(t *testing.T) {
	tests := []struct {
		name      string
		sounds    []string
		wantCount int
	}{
		{
			name:      "single sound",
			sounds:    []string{"p"},
			wantCount: 10,
		},
		{
			name:      "two sounds",
			sounds:    []string{"p", "b"},
			wantCount: 20,
		},
		{
			name:      "no sounds means all words",
			sounds:    nil,
			wantCount: 50,
		},
		{
			name:      "unknown sound matches nothing",
			sounds:    []string{"z"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForSounds(tt.sounds)
			if len(got) != tt.wantCount {
				t.Errorf("ForSounds(%v) returned %d words, want %d", tt.sounds, len(got), tt.wantCount)
			}
		})
	}
}

func TestIsSound(t *testing.T) {
	for _, s := range []string{"p", "b", "t", "d", "k"} {
		if !IsSound(s) {
			t.Errorf("IsSound(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"z", "P", "", "pb"} {
		if IsSound(s) {
			t.Errorf("IsSound(%q) = true, want false", s)
		}
	}
}

func TestSelectorPick(t *testing.T) {
	selector := NewSelector()

	t.Run("picks from selected sound", func(t *testing.T) {
		members := make(map[string]bool)
		for _, w := range ForSounds([]string{"k"}) {
			members[w] = true
		}

		for i := 0; i < 50; i++ {
			word, err := selector.Pick([]string{"k"}, nil)
			if err != nil {
				t.Fatalf("Pick() error = %v", err)
			}
			if !members[word] {
				t.Fatalf("Pick() = %q, not a k-sound word", word)
			}
		}
	})

	t.Run("custom words are eligible", func(t *testing.T) {
		seen := false
		for i := 0; i < 200; i++ {
			word, err := selector.Pick([]string{"p"}, []string{"Xylophone"})
			if err != nil {
				t.Fatalf("Pick() error = %v", err)
			}
			if word == "Xylophone" {
				seen = true
				break
			}
		}
		if !seen {
			t.Error("custom word was never picked in 200 draws")
		}
	})

	t.Run("unknown sound falls back to full list", func(t *testing.T) {
		word, err := selector.Pick([]string{"z"}, nil)
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		if word == "" {
			t.Error("Pick() returned empty word")
		}
	})

	t.Run("no sounds picks from everything", func(t *testing.T) {
		word, err := selector.Pick(nil, nil)
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		if word == "" {
			t.Error("Pick() returned empty word")
		}
	})
}
