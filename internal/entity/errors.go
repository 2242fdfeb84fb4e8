package entity

import "errors"

var (
	// ErrInvalidParam marks errors caused by bad client input
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrGone marks resources that existed but are no longer valid
	ErrGone = errors.New("no longer available")
)
