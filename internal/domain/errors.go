package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrEmptyPost            = fmt.Errorf("%w: post needs text, an image, a video or a poll", ErrValidation)
	ErrEmptyComment         = fmt.Errorf("%w: comment text is blank", ErrValidation)
	ErrEmptyMessage         = fmt.Errorf("%w: message text is blank", ErrValidation)
	ErrNegativeCount        = fmt.Errorf("%w: counts cannot be negative", ErrValidation)
	ErrTooFewOptions        = fmt.Errorf("%w: poll needs at least two options", ErrValidation)
	ErrTooManyOptions       = fmt.Errorf("%w: poll has too many options", ErrValidation)
	ErrPollDuration         = fmt.Errorf("%w: poll duration must be positive", ErrValidation)
	ErrPollClosed           = fmt.Errorf("%w: poll has ended", ErrValidation)
	ErrAlreadyVoted         = fmt.Errorf("%w: already voted in this poll", ErrValidation)
	ErrPollRegression       = fmt.Errorf("%w: poll update must keep its options and end date and cannot remove votes", ErrValidation)
	ErrNotParticipant       = fmt.Errorf("%w: sender is not in the conversation", ErrValidation)
	ErrSelfConversation     = fmt.Errorf("%w: cannot start a conversation with yourself", ErrValidation)
	ErrSelfFollow           = fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	ErrNoRecipients         = fmt.Errorf("%w: select at least one recipient", ErrValidation)
	ErrBlankID              = fmt.Errorf("%w: identifier is blank", ErrValidation)
	ErrEmptyMutedWord       = fmt.Errorf("%w: muted word is blank", ErrValidation)
	ErrUnknownPlatform      = fmt.Errorf("%w: unknown share platform", ErrValidation)
	ErrPostNotFound         = fmt.Errorf("%w: post", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrNoPoll               = fmt.Errorf("%w: post has no poll", ErrNotFound)
	ErrOptionNotFound       = fmt.Errorf("%w: poll option", ErrNotFound)
	ErrConversationNotFound = fmt.Errorf("%w: conversation", ErrNotFound)
	ErrCommunityNotFound    = fmt.Errorf("%w: community", ErrNotFound)
)
