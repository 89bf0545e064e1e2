// Package runner adapts the teacher's graceful-shutdown start loop
// (internal/start) for the reccodec CLI's watch subcommand: a signal-aware
// run loop that cancels its context on SIGINT and gives the running work a
// bounded grace period to stop on its own before returning.
package runner

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunFunc is one unit of work handed to Run.
type RunFunc func(ctx context.Context) error

// Run runs run until it returns, or until an interrupt signal arrives, in
// which case run's context is cancelled and Run waits up to stopTimeout for
// it to exit before returning anyway.
func Run(ctx context.Context, stopTimeout time.Duration, run RunFunc) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	defer signal.Stop(notify)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	once := &sync.Once{}
	fin := make(chan struct{})
	unlockOnce := func() { once.Do(func() { close(fin) }) }

	var runErr atomic.Value
	go func() {
		if err := run(ctx); err != nil {
			runErr.Store(err)
		}
		unlockOnce()
	}()

	select {
	case <-notify:
	case <-fin:
	}
	cancel()

	go func() {
		<-time.After(stopTimeout)
		unlockOnce()
	}()
	<-fin

	if err, ok := runErr.Load().(error); ok {
		return err
	}
	return nil
}

// RunAll runs every RunFunc concurrently under a shared errgroup, the way
// the CLI's watch subcommand fans out a filesystem poller alongside a
// running-total reporter.
func RunAll(ctx context.Context, runs ...RunFunc) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		group.Go(func() error { return run(ctx) })
	}
	return group.Wait()
}
