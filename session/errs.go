package session

import "errors"

var (
	ErrUsage          = errors.New("usage error")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoSuchKey      = errors.New("no such key")
	ErrNoSuchVersion  = errors.New("version not retained")
)
