package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound         = "not found"
	ErrMsgAreaNotFound     = "area not found"
	ErrMsgShadowNotFound   = "shadow not found"
	ErrMsgTemplateNotFound = "shadow template not found"
	ErrMsgSnapshotNotFound = "snapshot not found"
	ErrMsgStatNotFound     = "unknown stat"

	// State errors
	ErrMsgInvalidState    = "invalid state"
	ErrMsgNoActiveSession = "no active hunting session"
	ErrMsgAlreadyDeployed = "shadow is already deployed"
	ErrMsgNotDeployed     = "shadow is not deployed"
	ErrMsgAreaLocked      = "area is locked"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Snapshot errors
	ErrMsgUnsupportedSnapshot = "unsupported snapshot version"
	ErrMsgCorruptSnapshot     = "corrupt snapshot"

	// Catalog errors
	ErrMsgInvalidCatalog = "invalid catalog"
)

// Root error kinds. Every domain error wraps exactly one of these so callers can
// branch with errors.Is on the kind alone.
var (
	ErrNotFound     = errors.New(ErrMsgNotFound)
	ErrInvalidState = errors.New(ErrMsgInvalidState)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Lookup errors
	ErrAreaNotFound     = kindError(ErrNotFound, ErrMsgAreaNotFound)
	ErrShadowNotFound   = kindError(ErrNotFound, ErrMsgShadowNotFound)
	ErrTemplateNotFound = kindError(ErrNotFound, ErrMsgTemplateNotFound)
	ErrSnapshotNotFound = kindError(ErrNotFound, ErrMsgSnapshotNotFound)
	ErrStatNotFound     = kindError(ErrNotFound, ErrMsgStatNotFound)

	// State errors
	ErrNoActiveSession = kindError(ErrInvalidState, ErrMsgNoActiveSession)
	ErrAlreadyDeployed = kindError(ErrInvalidState, ErrMsgAlreadyDeployed)
	ErrNotDeployed     = kindError(ErrInvalidState, ErrMsgNotDeployed)
	ErrAreaLocked      = kindError(ErrInvalidState, ErrMsgAreaLocked)

	// Snapshot errors
	ErrUnsupportedSnapshot = errors.New(ErrMsgUnsupportedSnapshot)
	ErrCorruptSnapshot     = errors.New(ErrMsgCorruptSnapshot)

	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
)

// kindError builds a sentinel whose message is msg and which also matches kind
func kindError(kind error, msg string) error {
	return &kindedError{kind: kind, msg: msg}
}

type kindedError struct {
	kind error
	msg  string
}

func (e *kindedError) Error() string { return e.msg }

func (e *kindedError) Unwrap() error { return e.kind }

// NotFoundf wraps err (a NotFound sentinel) with the offending identifier
func NotFoundf(err error, id string) error {
	return fmt.Errorf("%w: %q", err, id)
}
