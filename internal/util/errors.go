package util

import "errors"

var (
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrUserNotFound     = errors.New("user not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrAlreadyCompleted = errors.New("assessment already completed")
	ErrInviteCompleted  = errors.New("invite is completed and can no longer be resent")
	ErrPermissionDenied = errors.New("permission denied")
)
