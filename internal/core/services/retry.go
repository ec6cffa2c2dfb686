package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/backoff"
)

// RetryPolicy bounds how often a unit of work is re-run after a store conflict.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy retries three times starting at 20ms.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: 20 * time.Millisecond}

// runWithRetry runs fn in a transaction, re-running the whole unit of work while
// the store reports a retryable conflict. The last conflict is returned once the
// policy is exhausted.
func (s *BaseService) runWithRetry(ctx context.Context, tm portsrepo.TransactionManager, policy RetryPolicy, op string, fn portsrepo.TxFunc) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = tm.RunInTx(ctx, fn)
		if err == nil || !apperrors.IsRetryable(err) || attempt >= policy.MaxRetries {
			return err
		}
		delay := backoff.ExponentialWithJitter(policy.BaseDelay, attempt)
		s.LogDebug(ctx, "Retrying after store conflict",
			slog.String("operation", op),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))
		if sleepErr := backoff.SleepWithContext(ctx, delay); sleepErr != nil {
			return apperrors.NewInternalError(op+" cancelled during retry", sleepErr)
		}
	}
}
