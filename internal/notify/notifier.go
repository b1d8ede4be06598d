// Package notify delivers queued RSVP notifications to the webhook URL each
// couple configures on their site.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/queue"
)

type Notifier struct {
	client     *http.Client
	logger     *zap.Logger
	maxRetries int
}

func NewNotifier(timeout time.Duration, maxRetries int, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
		maxRetries: maxRetries,
	}
}

type payload struct {
	Event        string   `json:"event"`
	SiteID       string   `json:"site_id"`
	InvitationID string   `json:"invitation_id"`
	GuestNames   []string `json:"guest_names"`
	Attending    int      `json:"attending"`
	HasPlusOne   bool     `json:"has_plus_one"`
	SubmittedAt  string   `json:"submitted_at"`
}

// Deliver posts the notification. Non-2xx responses count as failures so the
// worker can retry.
func (n *Notifier) Deliver(ctx context.Context, job *queue.Job) error {
	body, err := json.Marshal(payload{
		Event:        "rsvp.submitted",
		SiteID:       job.SiteID,
		InvitationID: job.InvitationID,
		GuestNames:   job.GuestNames,
		Attending:    job.Attending,
		HasPlusOne:   job.HasPlusOne,
		SubmittedAt:  job.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, job.NotifyURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	return nil
}

// Run consumes the queue until the context is cancelled. Failed jobs are
// re-queued up to maxRetries attempts.
func (n *Notifier) Run(ctx context.Context, q *queue.RedisQueue, popTimeout time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := q.Pop(ctx, popTimeout)
		if err != nil {
			if err == queue.ErrTimeout || ctx.Err() != nil {
				continue
			}
			n.logger.Error("failed to pop notification job", zap.Error(err))
			continue
		}

		if err := n.Deliver(ctx, job); err != nil {
			job.Attempts++
			if job.Attempts >= n.maxRetries {
				n.logger.Error("dropping notification after retries",
					zap.String("site_id", job.SiteID),
					zap.Int("attempts", job.Attempts),
					zap.Error(err),
				)
				continue
			}

			n.logger.Warn("notification delivery failed, re-queueing",
				zap.String("site_id", job.SiteID),
				zap.Int("attempts", job.Attempts),
				zap.Error(err),
			)
			if err := q.Push(ctx, job); err != nil {
				n.logger.Error("failed to re-queue notification", zap.Error(err))
			}
			continue
		}

		n.logger.Info("rsvp notification delivered",
			zap.String("site_id", job.SiteID),
			zap.Strings("guests", job.GuestNames),
		)
	}
}
