package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
)

type retryState int

const (
	stateAttempting retryState = iota
	stateBackingOff
	stateDone
	stateFailed
)

func (s retryState) String() string {
	switch s {
	case stateAttempting:
		return "attempting"
	case stateBackingOff:
		return "backing_off"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("retryState(%d)", int(s))
	}
}

// newRetryBackOff yields 1s, 2s, 4s, 8s... with no jitter and no elapsed time cap.
func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 16 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// attemptLoop drives one Generate call through
// attempting(n) -> backingOff(n) -> attempting(n+1) ... -> done | failed.
type attemptLoop struct {
	client   *Client
	target   string
	payload  []byte
	progress models.ProgressFunc
	backOff  backoff.BackOff

	state   retryState
	attempt int
	status  int
	delay   time.Duration
	text    string
	err     error
}

func newAttemptLoop(c *Client, target string, payload []byte, progress models.ProgressFunc) *attemptLoop {
	return &attemptLoop{
		client:   c,
		target:   target,
		payload:  payload,
		progress: progress,
		backOff:  newRetryBackOff(),
		state:    stateAttempting,
	}
}

func (l *attemptLoop) run(ctx context.Context) (string, error) {
	for {
		switch l.state {
		case stateAttempting:
			l.attemptOnce(ctx)
		case stateBackingOff:
			l.waitBackOff(ctx)
		case stateDone:
			l.progress.Emit(models.ProgressEvent{Type: models.ProgressCompleted, Attempt: l.attempt})
			return l.text, nil
		case stateFailed:
			l.progress.Emit(models.ProgressEvent{
				Type:       models.ProgressFailed,
				Attempt:    l.attempt,
				StatusCode: domainErrors.StatusCode(l.err),
				Err:        l.err,
			})
			return "", l.err
		default:
			l.fail(domainErrors.ErrAPICall.WithError(fmt.Errorf("invalid retry state %s", l.state)))
		}
	}
}

func (l *attemptLoop) attemptOnce(ctx context.Context) {
	log := logger.FromContext(ctx)
	l.progress.Emit(models.ProgressEvent{Type: models.ProgressAttemptStarted, Attempt: l.attempt})
	log.Debug("sending generation request", "attempt", l.attempt)

	status, body, err := l.client.send(ctx, l.target, l.payload)
	if err != nil {
		l.fail(err)
		return
	}

	switch {
	case isSuccess(status):
		text, err := parseGeneratedText(body)
		if err != nil {
			l.fail(err)
			return
		}
		l.text = text
		l.state = stateDone

	case isTransient(status) && l.attempt < MaxAttempts-1:
		delay := l.backOff.NextBackOff()
		if delay == backoff.Stop {
			l.fail(domainErrors.NewHTTPError(status, string(body)))
			return
		}
		l.status = status
		l.delay = delay
		l.state = stateBackingOff

	default:
		l.fail(domainErrors.NewHTTPError(status, string(body)))
	}
}

func (l *attemptLoop) waitBackOff(ctx context.Context) {
	logger.FromContext(ctx).Warn("generation API busy, retrying",
		"status", l.status,
		"attempt", l.attempt,
		"delay", l.delay)

	l.progress.Emit(models.ProgressEvent{
		Type:       models.ProgressRetryScheduled,
		Attempt:    l.attempt,
		StatusCode: l.status,
		Delay:      l.delay,
	})

	if err := l.client.sleep(ctx, l.delay); err != nil {
		l.fail(domainErrors.ErrAPICall.WithError(err))
		return
	}

	l.attempt++
	l.state = stateAttempting
}

func (l *attemptLoop) fail(err error) {
	l.err = err
	l.state = stateFailed
}
