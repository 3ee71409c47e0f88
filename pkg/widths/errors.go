package widths

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when a width mode string is not recognized.
	ErrInvalidMode = errors.New("invalid column width mode")
	// ErrInvalidDirection is returned when a direction string is not recognized.
	ErrInvalidDirection = errors.New("invalid layout direction")
)

// ParseDirection converts a user supplied string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case LTR, RTL:
		return Direction(s), nil
	case "":
		return LTR, nil
	}
	return "", fmt.Errorf("%w: %q (expected ltr or rtl)", ErrInvalidDirection, s)
}
