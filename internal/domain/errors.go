package domain

import "errors"

// Card validation errors
var (
	ErrInvalidCardType  = errors.New("invalid card type")
	ErrInvalidCardState = errors.New("invalid card state")
)

// Session validation errors
var (
	ErrInvalidTier      = errors.New("tier must be between 1 and 20")
	ErrInvalidSlotCount = errors.New("slot count must be between 1 and 3")
)
