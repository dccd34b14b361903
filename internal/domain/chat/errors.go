package chat

import "errors"

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotMember     = errors.New("not a member of this group")
	ErrEmptyMessage  = errors.New("message is empty")
)
