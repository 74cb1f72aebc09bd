// Package signal cancels command contexts on SIGINT and SIGTERM so waves
// and store operations unwind cleanly instead of dying mid-write.
package signal

import (
	"context"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"
)

// interruptExitCode is the conventional exit code for death by SIGINT.
const interruptExitCode = 130

// NotifyContext returns a copy of parent that is canceled when SIGINT or
// SIGTERM arrives. A second signal while shutdown is in progress exits the
// process immediately, so a wedged session lock cannot trap the user.
//
// The returned stop function releases the signal registration; call it when
// the command finishes.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	// Buffer of 1 so a signal delivered between selects is not dropped.
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	ossignal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer ossignal.Stop(sig)

		select {
		case <-sig:
			cancel()
		case <-done:
			return
		}

		select {
		case <-sig:
			os.Exit(interruptExitCode)
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() { close(done) })
		cancel()
	}
	return ctx, stop
}
