package service

import "errors"

var (
	// ErrInvalidUsername rejects a publish attempt before any remote call.
	ErrInvalidUsername = errors.New("username must not be empty")
	// ErrNotSignedIn means the remote store's account/session precondition
	// failed. Checked eagerly so an unauthenticated session never leaves
	// partial remote state.
	ErrNotSignedIn = errors.New("not signed in to the remote store")
)
