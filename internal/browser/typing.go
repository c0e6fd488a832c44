package browser

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
)

// TypingMode selects how text is sent to inputs.
type TypingMode string

const (
	// TypingFast sends every key without delay.
	TypingFast TypingMode = "fast"
	// TypingHuman pauses 50-150ms between keystrokes.
	TypingHuman TypingMode = "human"
)

// ParseTypingMode accepts "fast" and "human". An empty string means fast.
func ParseTypingMode(s string) (TypingMode, error) {
	switch TypingMode(s) {
	case "", TypingFast:
		return TypingFast, nil
	case TypingHuman:
		return TypingHuman, nil
	default:
		return "", fmt.Errorf("unknown typing mode %q", s)
	}
}

// humanDelay is the pause before the next keystroke in TypingHuman mode.
func humanDelay() time.Duration {
	return time.Duration(50+rand.Intn(100)) * time.Millisecond
}

// TypeHuman types text into an element with human-like timing.
// It uses Element.Type() which properly triggers keyboard events (keydown/keyup).
func TypeHuman(el *rod.Element, text string) error {
	for _, char := range text {
		if err := el.Type(input.Key(char)); err != nil {
			return err
		}
		time.Sleep(humanDelay())
	}
	return nil
}

// TypeFast types text quickly without delays.
// Still triggers proper keyboard events (keydown/keyup) for each character.
func TypeFast(el *rod.Element, text string) error {
	keys := make([]input.Key, 0, len(text))
	for _, char := range text {
		keys = append(keys, input.Key(char))
	}
	return el.Type(keys...)
}

func typeRod(el *rod.Element, text string, mode TypingMode) error {
	if mode == TypingHuman {
		return TypeHuman(el, text)
	}
	return TypeFast(el, text)
}
