package sandbox

import "errors"

var (
	// ErrMissingAsset indicates a symlink target does not exist. The sandbox
	// is unusable without it, so construction aborts.
	ErrMissingAsset = errors.New("sandbox: missing asset")
	// ErrLinkConflict indicates a symlink already existed inside a freshly
	// created sandbox, which means two writers raced on one path.
	ErrLinkConflict = errors.New("sandbox: symlink conflict in fresh sandbox")
)
