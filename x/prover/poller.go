package prover

import (
	"context"
	"time"
)

// WaitResult is returned by WaitForProof on the single success exit.
type WaitResult struct {
	Job      Job
	Status   JobStatus
	Attempts int
	Elapsed  time.Duration
}

// WaitForProof polls the job at a fixed interval until it completes, the
// proving side reports a terminal failure, or the attempt budget runs out.
//
// Fixed-interval polling is deliberate: proving latency is roughly constant,
// so backoff would only delay completion detection. A transport or remote
// error during polling consumes the attempt and the loop continues; only a
// terminal failure status aborts early. Cancelling the context aborts the
// next query or sleep promptly.
func (c *Client) WaitForProof(ctx context.Context, job Job) (*WaitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(job, 0, 0, err)
	}

	log := c.log.With().Str("job_id", job.ID).Logger()
	start := time.Now()

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		status, err := c.QueryStatus(ctx, job)
		switch {
		case err != nil && ctx.Err() != nil:
			elapsed := time.Since(start)
			c.metrics.observeWait(attempt, elapsed, "cancelled")
			return nil, cancelled(job, attempt, elapsed, ctx.Err())
		case err != nil:
			if IsKind(err, ErrInvalidArgument) {
				return nil, err
			}
			log.Warn().Err(err).
				Int("attempt", attempt).
				Int("max_attempts", c.cfg.MaxAttempts).
				Msg("status query failed, will retry")
		case status.Complete():
			elapsed := time.Since(start)
			c.metrics.observeWait(attempt, elapsed, "complete")
			log.Info().
				Int("attempts", attempt).
				Dur("elapsed", elapsed).
				Int("proof_bytes", len(status.Proof)).
				Msg("proof job completed")
			return &WaitResult{Job: job, Status: status, Attempts: attempt, Elapsed: elapsed}, nil
		case status.Failed():
			elapsed := time.Since(start)
			c.metrics.observeWait(attempt, elapsed, "failed")
			log.Warn().
				Int("attempts", attempt).
				Str("reason", status.FailureReason).
				Msg("proof job failed")
			return nil, Errorf(ErrProofFailed, "proof generation failed: %s", status.FailureReason).
				WithJob(job.ID).
				WithAttempts(attempt).
				WithElapsed(elapsed)
		default:
			log.Debug().
				Int("attempt", attempt).
				Int("max_attempts", c.cfg.MaxAttempts).
				Msg("proof job still pending")
		}

		// No sleep after the final attempt.
		if attempt == c.cfg.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.cfg.Interval); err != nil {
			elapsed := time.Since(start)
			c.metrics.observeWait(attempt, elapsed, "cancelled")
			return nil, cancelled(job, attempt, elapsed, err)
		}
	}

	elapsed := time.Since(start)
	c.metrics.observeWait(c.cfg.MaxAttempts, elapsed, "timeout")
	return nil, Errorf(ErrProofTimeout, "no proof after %d attempts over %s", c.cfg.MaxAttempts, elapsed.Round(time.Millisecond)).
		WithJob(job.ID).
		WithAttempts(c.cfg.MaxAttempts).
		WithElapsed(elapsed)
}

// RequestAndWait submits the request in the given mode and waits for the
// resulting job to finish.
func (c *Client) RequestAndWait(ctx context.Context, mode Mode, params RequestParams) (*WaitResult, error) {
	job, err := c.request(ctx, mode, params)
	if err != nil {
		return nil, err
	}
	return c.WaitForProof(ctx, job)
}

func cancelled(job Job, attempts int, elapsed time.Duration, cause error) error {
	return NewError(ErrCancelled, "proof wait cancelled").
		WithCause(cause).
		WithJob(job.ID).
		WithAttempts(attempts).
		WithElapsed(elapsed)
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
