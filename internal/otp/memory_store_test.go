package otp

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_Consume(t *testing.T) {
	tests := []struct {
		name     string
		put      map[string]string
		email    string
		code     string
		expected bool
		left     int
	}{
		{
			name:     "matching code",
			put:      map[string]string{"a@x.com": "123456"},
			email:    "a@x.com",
			code:     "123456",
			expected: true,
			left:     0,
		},
		{
			name:     "email case and spaces ignored",
			put:      map[string]string{"A@x.com": "123456"},
			email:    " a@X.com",
			code:     "123456",
			expected: true,
			left:     0,
		},
		{
			name:     "wrong code keeps challenge",
			put:      map[string]string{"a@x.com": "123456"},
			email:    "a@x.com",
			code:     "654321",
			expected: false,
			left:     1,
		},
		{
			name:     "no challenge",
			put:      map[string]string{"b@x.com": "123456"},
			email:    "a@x.com",
			code:     "123456",
			expected: false,
			left:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(0)
			ctx := context.Background()
			for email, code := range tt.put {
				require.NoError(t, store.Put(ctx, email, code))
			}

			ok, err := store.Consume(ctx, tt.email, tt.code)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.left, store.Len())
		})
	}
}

func TestMemoryStore_SingleUse(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@x.com", "123456"))

	ok, err := store.Consume(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@x.com", "111111"))
	require.NoError(t, store.Put(ctx, "a@x.com", "222222"))

	ok, err := store.Consume(ctx, "a@x.com", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Consume(ctx, "a@x.com", "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_ConcurrentConsume(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@x.com", "123456"))

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Consume(ctx, "a@x.com", "123456"); ok {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)
}

func TestMemoryStore_TTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@x.com", "123456"))
	require.NoError(t, store.Put(ctx, "b@x.com", "654321"))

	now = now.Add(9 * time.Minute)
	ok, err := store.Consume(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, err = store.Consume(ctx, "b@x.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@x.com", "111111"))

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Put(ctx, "b@x.com", "222222"))

	assert.Equal(t, 0, store.Sweep(now))
	assert.Equal(t, 1, store.Sweep(now.Add(45*time.Second)))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Sweep(now.Add(time.Hour)))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_SweepWithoutTTL(t *testing.T) {
	store := NewMemoryStore(0)
	require.NoError(t, store.Put(context.Background(), "a@x.com", "111111"))

	assert.Equal(t, 0, store.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_StartSweeper(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	c, err := store.StartSweeper("@every 1m", zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = store.StartSweeper("not a schedule", zap.NewNop())
	assert.Error(t, err)
}
