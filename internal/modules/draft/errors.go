package draft

import "errors"

var (
	ErrNotFound      = errors.New("draft not found")
	ErrNoService     = errors.New("no service selected")
	ErrAddonNotFound = errors.New("addon not found for selected service")
)
