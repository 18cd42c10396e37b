package repo

import "errors"

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrBallotNotFound = errors.New("ballot not found")
	ErrConfigNotFound = errors.New("config not found")
)
