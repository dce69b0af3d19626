package guestbook

import "errors"

var (
	ErrPilgrimageNotFound = errors.New("pilgrimage not found")
	ErrEntryNotFound      = errors.New("guestbook entry not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrNotCertified  = errors.New("pilgrimage visit is not certified")
	ErrMissingImages = errors.New("certification post requires at least one image")
	ErrNotAuthor     = errors.New("caller is not the entry author")
	ErrImageUpload   = errors.New("image upload failed")
)
