package domain

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotConversationOwner = errors.New("conversation belongs to another user")
	ErrUpstreamUnavailable  = errors.New("upstream service unavailable")
)
