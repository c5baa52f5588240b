package files

import "errors"

// ErrOutsideVault is returned when a path is absolute or climbs above the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// ErrExists indicates a create targeted a path that is already taken.
var ErrExists = errors.New("path already exists")
