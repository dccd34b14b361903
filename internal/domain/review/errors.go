package review

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReplyNotFound  = errors.New("reply not found")
	ErrNotReplyAuthor = errors.New("not the reply author")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyMessage   = errors.New("message must not be empty")
)
