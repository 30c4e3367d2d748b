package tools

import "context"

// TaskFunc is a unit of background work.
type TaskFunc func(ctx context.Context) error

// Dispatch starts fn on its own goroutine and returns immediately. The
// task handles its own errors; name only identifies it to callers.
func Dispatch(ctx context.Context, name string, fn TaskFunc) {
	go func() {
		_ = fn(ctx)
	}()
}
