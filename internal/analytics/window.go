package analytics

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidParameter is returned before any computation when an argument is out of range.
var ErrInvalidParameter = errors.New("invalid parameter")

// Window is the trailing number of days order metrics are computed over.
type Window int

const (
	Week    Window = 7
	Month   Window = 30
	Quarter Window = 90
	Year    Window = 365
)

// Windows lists the supported window sizes.
var Windows = []Window{Week, Month, Quarter, Year}

func (w Window) Valid() bool {
	switch w {
	case Week, Month, Quarter, Year:
		return true
	}
	return false
}

func (w Window) Days() int {
	return int(w)
}

func (w Window) validate() error {
	if !w.Valid() {
		return fmt.Errorf("%w: window must be one of 7, 30, 90 or 365 days, got %d", ErrInvalidParameter, int(w))
	}
	return nil
}

// ParseWindow validates a day count.
func ParseWindow(days int) (Window, error) {
	w := Window(days)
	if err := w.validate(); err != nil {
		return 0, err
	}
	return w, nil
}

// ParseWindowString is ParseWindow for query string values.
func ParseWindowString(s string) (Window, error) {
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: window %q is not a number", ErrInvalidParameter, s)
	}
	return ParseWindow(days)
}
