package async_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kevtrend/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("runs the handler in the background", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			close(done)
			return nil
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("detaches from the caller's cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			done <- ctx.Err()
			return nil
		})

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("recovers a panicking handler", func(t *testing.T) {
		ran := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer close(ran)
			panic("boom")
		})

		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
		// Reaching here without the test process dying is the assertion
	})
}
