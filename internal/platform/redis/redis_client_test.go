package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "disabled when nothing set",
			env:  map[string]string{},
			want: Config{},
		},
		{
			name: "host with default port",
			env:  map[string]string{"REDIS_HOST": "cache", "REDIS_PASSWORD": "pw"},
			want: Config{Addr: "cache:6379", Password: "pw"},
		},
		{
			name: "host port and db",
			env:  map[string]string{"REDIS_HOST": "cache", "REDIS_PORT": "6380", "REDIS_DB": "2"},
			want: Config{Addr: "cache:6380", DB: 2},
		},
		{
			name: "url takes precedence",
			env:  map[string]string{"REDIS_URL": "redis://:secret@r.example:6390/3", "REDIS_HOST": "ignored"},
			want: Config{Addr: "r.example:6390", Password: "secret", DB: 3},
		},
		{
			name: "invalid url falls back",
			env:  map[string]string{"REDIS_URL": "http://nope", "REDIS_HOST": "cache"},
			want: Config{Addr: "cache:6379"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB"} {
				t.Setenv(k, tt.env[k])
			}

			got := LoadConfigFromEnv()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Addr != "", got.Enabled())
		})
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb, err := NewRedisClient(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
