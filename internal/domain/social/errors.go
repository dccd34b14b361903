package social

import "errors"

var (
	ErrSelfReference          = errors.New("cannot target yourself")
	ErrAlreadyFriends         = errors.New("users are already friends")
	ErrRequestAlreadySent     = errors.New("friend request already sent")
	ErrRequestAlreadyReceived = errors.New("this user already sent you a friend request")
	ErrRequestNotFound        = errors.New("friend request not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrAlreadyFollowing       = errors.New("already following this user")
	ErrNotFollowing           = errors.New("not following this user")
)
