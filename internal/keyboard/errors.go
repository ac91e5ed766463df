package keyboard

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyAlreadyHeld is matched by an InputDeviceError raised on a second press.
	ErrKeyAlreadyHeld = errors.New("key already pressed")
	// ErrKeyNotHeld is matched by an InputDeviceError raised on a release without press.
	ErrKeyNotHeld = errors.New("key not pressed")
	// ErrNoKeyMapping indicates the active layout cannot produce a character.
	ErrNoKeyMapping = errors.New("no key mapping for character")
	// ErrInvalidLayoutID indicates a KLID that is not eight hex digits.
	ErrInvalidLayoutID = errors.New("layout id must be 8 hex digits")
	// ErrLayoutNotLoaded indicates the OS returned no layout for a KLID.
	ErrLayoutNotLoaded = errors.New("layout not loaded")
)

// InputDeviceError reports a press or release that would desynchronize the
// held-key model from the real keyboard. It is never retried.
type InputDeviceError struct {
	Op  string
	Key uint16
}

// Error implements error.
func (e *InputDeviceError) Error() string {
	if e.Op == opKeyUp {
		return fmt.Sprintf("cannot release the key %d (%s) as it is not pressed", e.Key, SpecialKey(e.Key))
	}
	return fmt.Sprintf("cannot press the key %d (%s) as it is already pressed", e.Key, SpecialKey(e.Key))
}

// Is matches the sentinel for the failed direction.
func (e *InputDeviceError) Is(target error) bool {
	switch target {
	case ErrKeyAlreadyHeld:
		return e.Op == opKeyDown
	case ErrKeyNotHeld:
		return e.Op == opKeyUp
	}
	return false
}
