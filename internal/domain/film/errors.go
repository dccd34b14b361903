package film

import "errors"

var (
	ErrFilmNotFound = errors.New("film not found")
)
