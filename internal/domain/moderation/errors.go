package moderation

import "errors"

var (
	ErrContentNotFound     = errors.New("reported content not found")
	ErrAlreadyReported     = errors.New("content already reported by this user")
	ErrReportNotFound      = errors.New("report not found")
	ErrReportNotPending    = errors.New("report has already been handled")
	ErrContentNotDeletable = errors.New("this content type cannot be deleted")
)
