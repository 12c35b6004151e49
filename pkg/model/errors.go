package model

import "errors"

// ErrInvalidInput is wrapped by every validation failure of the planning input
var ErrInvalidInput = errors.New("invalid input")
