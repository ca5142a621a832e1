// Package tts synthesizes broadcast scripts into MP3 audio.
// The primary engine is ElevenLabs; a Google Translate engine serves as
// fallback when the primary keeps failing.
package tts

import "context"

// Engine converts text into MP3 audio bytes.
type Engine interface {
	// Name identifies the engine in logs and health output.
	Name() string
	// Ready reports whether the engine is configured and usable.
	Ready() bool
	// Synthesize renders the text as MP3 audio.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
