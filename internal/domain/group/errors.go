package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrPrivateGroup       = errors.New("group is private")
	ErrNotMember          = errors.New("not a member of this group")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrAdminCannotLeave   = errors.New("group admin cannot leave the group")
	ErrInsufficientRole   = errors.New("insufficient group role")
	ErrInviteeNotFound    = errors.New("invitee not found")
	ErrAlreadyInvited     = errors.New("user already has a pending invitation")
	ErrFilmAlreadyInGroup = errors.New("film already in group list")
	ErrInvitationNotFound = errors.New("invitation not found")
)
