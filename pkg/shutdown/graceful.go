package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Func adapts a plain function to Stoppable.
type Func func(ctx context.Context) error

func (f Func) Shutdown(ctx context.Context) error { return f(ctx) }

// Graceful blocks until one of signals arrives, then stops every component in order
// within a shared timeout.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, components ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	if err := Stop(timeout, components...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}

// Stop shuts components down in order and joins their errors.
func Stop(timeout time.Duration, components ...Stoppable) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
