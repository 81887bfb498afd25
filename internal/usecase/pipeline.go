package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CyberAustin/AFSCbot/internal/afsc"
	"github.com/CyberAustin/AFSCbot/internal/domain"
	"github.com/CyberAustin/AFSCbot/internal/ports"
)

const (
	initialBackoff = 5 * time.Second
	maxBackoff     = 5 * time.Minute
)

// PipelineDeps wires all driven adapters into the stream loop.
type PipelineDeps struct {
	Source  ports.CommentSource
	Ledger  ports.CommentLedger
	Builder *afsc.Builder
	BotUser string
	Logger  *slog.Logger
}

// Pipeline implements the comment-annotation workflow: fetch the next
// comment, skip or annotate, reply, record.
type Pipeline struct {
	source  ports.CommentSource
	ledger  ports.CommentLedger
	builder *afsc.Builder
	botUser string
	logger  *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:  deps.Source,
		ledger:  deps.Ledger,
		builder: deps.Builder,
		botUser: deps.BotUser,
		logger:  deps.Logger,
	}
}

// Run consumes the comment stream one item at a time until ctx is
// cancelled. Transient stream errors back off exponentially and the loop
// resumes fetching; per-comment failures are logged and never stop the
// loop.
func (p *Pipeline) Run(ctx context.Context) error {
	backoff := initialBackoff
	processed := 0

	for {
		comment, err := p.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			p.logger.Error("comment stream error", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff

		if err := p.processComment(ctx, comment); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("process comment", "comment", comment.ID, "error", err)
			continue
		}

		processed++
		p.logger.Debug("comments processed since start", "count", processed)
	}
}

// processComment runs the skip/annotate/reply/record sequence for one
// comment. The ledger is written only after a successful reply: a failed
// post leaves the comment unrecorded and costs at most one lost reply,
// never a duplicate.
func (p *Pipeline) processComment(ctx context.Context, comment domain.Comment) error {
	p.logger.Info("processing comment", "permalink", p.source.Permalink(comment))

	if comment.Author == p.botUser {
		p.logger.Debug("author is the bot, skipping", "comment", comment.ID)
		return nil
	}

	done, err := p.ledger.Contains(ctx, comment.ID)
	if err != nil {
		return fmt.Errorf("check ledger: %w", err)
	}
	if done {
		p.logger.Debug("already processed, skipping", "comment", comment.ID)
		return nil
	}

	body := p.builder.Annotate(comment.Body)
	if body == "" {
		return nil
	}

	p.logger.Info("replying with annotation", "comment", comment.ID, "author", comment.Author)

	if err := p.source.Reply(ctx, comment.ID, afsc.ReplyHeader+body); err != nil {
		return fmt.Errorf("reply to %s: %w", comment.ID, err)
	}

	if err := p.ledger.Insert(ctx, comment.ID); err != nil {
		return fmt.Errorf("record comment %s: %w", comment.ID, err)
	}

	return nil
}
