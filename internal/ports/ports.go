package ports

import (
	"context"

	"github.com/CyberAustin/AFSCbot/internal/domain"
)

// CommentSource yields subreddit comments in order and accepts replies.
type CommentSource interface {
	// Next blocks until the next unseen comment arrives or ctx is done.
	Next(ctx context.Context) (domain.Comment, error)
	Reply(ctx context.Context, commentID, body string) error
	Permalink(c domain.Comment) string
}

// CommentLedger is the durable set of comment ids already replied to.
// Rows are never removed; Insert on an existing id is a no-op.
type CommentLedger interface {
	Contains(ctx context.Context, commentID string) (bool, error)
	Insert(ctx context.Context, commentID string) error
	Close() error
}

// LinkSource provides the auxiliary base-code → wiki URL table.
type LinkSource interface {
	Links(ctx context.Context) (map[string]string, error)
}
