package bgui

import (
	"github.com/madnessengine/bgui/internal/core"
	"github.com/madnessengine/bgui/internal/utils"
)

// Fatal parse errors: Parse returns no ParsedFile when these occur.
var (
	ErrFileTooShort     = core.ErrFileTooShort
	ErrRegisterNotFound = core.ErrRegisterNotFound
)

// wrapErr attaches a short context string to a lower-level error,
// returning nil unchanged.
func wrapErr(context string, cause error) error {
	return utils.WrapError(context, cause)
}
