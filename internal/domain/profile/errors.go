package profile

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPseudoTaken      = errors.New("pseudo already taken")
	ErrFavoriteLimit    = errors.New("favorite list is full")
	ErrAlreadyFavorite  = errors.New("film already in favorites")
	ErrFavoriteNotFound = errors.New("film not in favorites")
)
