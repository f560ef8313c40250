package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize    = errors.New("grid size must be positive")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
	ErrBombOnDisabled = errors.New("bomb placed on a disabled cell")
)

// ConfigError reports a [Config] that cannot be built into a board. It is
// returned by [NewGame] and never produced once a game is running.
type ConfigError struct {
	Field string // "size", "bomb" or "disabled"
	Coord Coord
	Err   error
}

// [*ConfigError] implements [error]
func (e *ConfigError) Error() string {
	if e.Field == "size" {
		return fmt.Sprintf("board config: %s", e.Err)
	}
	return fmt.Sprintf("board config: %s %s: %s", e.Field, e.Coord, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
