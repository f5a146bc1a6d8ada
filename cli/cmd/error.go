package cmd

import "github.com/ardnew/fjord/lang"

// Sentinel errors returned by the commands. Each is a [lang.Error], so
// callers attach context with Wrap and With and match with errors.Is.
var (
	ErrReadScript      = lang.NewError("read script")
	ErrScriptFailed    = lang.NewError("script failed")
	ErrCheckFailed     = lang.NewError("syntax check failed")
	ErrCommandNotFound = lang.NewError("command not found")
	ErrInvalidFormat   = lang.NewError("invalid format")
	ErrWriteOutput     = lang.NewError("write output")
)
