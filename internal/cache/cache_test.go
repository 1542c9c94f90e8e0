package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/compress"
)

func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()

	_, err := c.Get(ctx, "doc:work-1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "doc:work-1", []byte(`{"title":"Crossfire"}`), time.Minute))
	require.NoError(t, c.Set(ctx, "doc:work-2", []byte(`{}`), time.Minute))
	require.NoError(t, c.Set(ctx, "password:default", []byte("secret"), time.Minute))

	value, err := c.Get(ctx, "doc:work-1")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Crossfire"}`, string(value))

	require.NoError(t, c.Delete(ctx, "doc:work-1", "missing"))
	_, err = c.Get(ctx, "doc:work-1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.DeletePrefix(ctx, "doc:"))
	_, err = c.Get(ctx, "doc:work-2")
	assert.ErrorIs(t, err, ErrMiss)

	value, err = c.Get(ctx, "password:default")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(value))
}

func TestMemory(t *testing.T) {
	exerciseCache(t, NewMemory())
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", []byte("v"), time.Second))
	now = now.Add(2 * time.Second)

	_, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNop(t *testing.T) {
	require.NoError(t, Nop{}.Set(context.Background(), "k", []byte("v"), 0))
	_, err := Nop{}.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	codecs := map[string]compress.Compress{
		"gzip":   compress.NewGZip(),
		"brotli": compress.NewBrotli(),
		"lz4":    compress.NewLZ4(),
		"none":   compress.NewNop(),
	}
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			r := NewRedis(addr, os.Getenv("REDIS_PASSWORD"), 0, codec)
			defer r.Close()
			require.NoError(t, r.Ping(context.Background()))

			exerciseCache(t, r)
		})
	}
}

func TestRedis_StoresEncodedValues(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	r := NewRedis(addr, os.Getenv("REDIS_PASSWORD"), 0, compress.NewGZip())
	defer r.Close()

	value := []byte(`{"title":"Crossfire","programNote":"loud loud loud loud loud"}`)
	require.NoError(t, r.Set(ctx, "doc:encoded", value, time.Minute))
	defer r.Delete(ctx, "doc:encoded")

	raw, err := r.client.Get(ctx, keyPrefix+"doc:encoded").Bytes()
	require.NoError(t, err)
	assert.NotEqual(t, value, raw)

	decoded, err := compress.NewGZip().Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, value, decoded)

	got, err := r.Get(ctx, "doc:encoded")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}
