package micmac

import "errors"

var (
	// ErrToolNotFound is returned when the mm3d executable cannot be located.
	ErrToolNotFound = errors.New("micmac: mm3d not found in PATH")
)
