package wm

import "errors"

var (
	ErrUnknownDesktop     = errors.New("unknown desktop")
	ErrUnknownPanel       = errors.New("unknown panel")
	ErrUnknownGroup       = errors.New("unknown group")
	ErrUnknownContent     = errors.New("unknown content")
	ErrUnknownArrangement = errors.New("unknown arrangement")
	ErrInvalidSnap        = errors.New("invalid snap")
	ErrNotReady           = errors.New("host not ready")
)
