// Package signal cancels long-running daedalus commands (serve, watch,
// simulate) on SIGINT or SIGTERM.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Interrupt records whether a termination signal was received.
type Interrupt struct {
	received atomic.Bool
}

// Received reports whether SIGINT or SIGTERM arrived before the context ended.
func (i *Interrupt) Received() bool {
	return i.received.Load()
}

// Watch registers SIGINT and SIGTERM handlers. When a signal arrives it calls
// onInterrupt (if non-nil) with the signal, marks the returned Interrupt, and
// cancels the context. The handler is removed once ctx is done.
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	intr := signal.Watch(ctx, cancel, nil)
//	...
//	if intr.Received() {
//	    os.Exit(exitcode.Interrupted)
//	}
func Watch(ctx context.Context, cancel context.CancelFunc, onInterrupt func(os.Signal)) *Interrupt {
	intr := &Interrupt{}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			intr.received.Store(true)
			if onInterrupt != nil {
				onInterrupt(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()
	return intr
}
