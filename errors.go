package vcache

import (
	"errors"
	"fmt"
)

var ErrNilCompute = errors.New("vcache: nil compute func")

// OpError describes a backing-store failure. It is passed to Hooks.StoreError
// and returned by InvalidateGroup.
type OpError struct {
	Op    string // "get", "set", "delete", "version", "version_init", "bump", "flush", "durable_get", ...
	Group string
	Key   string
	Err   error
}

func (e *OpError) Error() string {
	switch {
	case e.Key != "" && e.Group != "":
		return fmt.Sprintf("vcache: %s %s/%s: %v", e.Op, e.Group, e.Key, e.Err)
	case e.Group != "":
		return fmt.Sprintf("vcache: %s %s: %v", e.Op, e.Group, e.Err)
	case e.Key != "":
		return fmt.Sprintf("vcache: %s %s: %v", e.Op, e.Key, e.Err)
	default:
		return fmt.Sprintf("vcache: %s: %v", e.Op, e.Err)
	}
}

func (e *OpError) Unwrap() error { return e.Err }
