// Package speech is the boundary to external speech-to-text services.
// Providers take audio bytes and return a best-effort transcript; everything
// about recognition itself is the service's problem.
package speech

import (
	"context"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is a provider's transcription of one audio clip
type Result struct {
	Text string
}

// Provider transcribes audio clips
type Provider interface {
	// Transcribe sends the audio to the service and returns the transcript.
	// The transcript may be empty when nothing was recognized
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*Result, error)

	// Name identifies the provider for logging
	Name() string
}

// Normalize prepares a raw transcript for scoring: whitespace is trimmed,
// the first letter is uppercased and the rest lowercased, matching the
// capitalization of the built-in word lists
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + text[size:]
}
