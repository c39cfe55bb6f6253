package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	t.Run("single attempt is a passthrough", func(t *testing.T) {
		c := CompleterFunc(func(context.Context, string) (string, bool) { return "x", true })
		_, wrapped := WithRetry(c, 1, time.Millisecond, nil).(*Retrying)
		assert.False(t, wrapped)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		c := CompleterFunc(func(context.Context, string) (string, bool) {
			calls++
			if calls < 3 {
				return "", false
			}
			return "{}", true
		})
		reply, ok := WithRetry(c, 5, time.Millisecond, nil).Complete(context.Background(), "p")
		assert.True(t, ok)
		assert.Equal(t, "{}", reply)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		calls := 0
		c := CompleterFunc(func(context.Context, string) (string, bool) {
			calls++
			return "", false
		})
		reply, ok := WithRetry(c, 3, time.Millisecond, nil).Complete(context.Background(), "p")
		assert.False(t, ok)
		assert.Empty(t, reply)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		c := CompleterFunc(func(context.Context, string) (string, bool) {
			calls++
			cancel()
			return "", false
		})
		_, ok := WithRetry(c, 10, time.Hour, nil).Complete(ctx, "p")
		assert.False(t, ok)
		assert.Equal(t, 1, calls)
	})
}
