package controllers

import "errors"

var (
	ErrNotFound      = errors.New("game not found")
	ErrNoGames       = errors.New("no games registered")
	ErrNoFilterMatch = errors.New("no games found matching the provided filters")
	ErrBadRequest    = errors.New("invalid request body")
	ErrInternal      = errors.New("internal error")
	ErrEncoding      = errors.New("failed to encode")
)

const MsgDeleted = "game removed successfully"
