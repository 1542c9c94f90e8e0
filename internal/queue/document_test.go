package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/model"
)

func TestMemoryQueue(t *testing.T) {
	q := NewMemoryQueue()
	docs := []model.Document{
		&model.Instrument{Base: model.Base{ID: "instrument-1", Type: model.TypeInstrument}, Name: "flute"},
	}

	require.NoError(t, q.Publish(context.Background(), docs))
	assert.Equal(t, docs, q.Documents())

	q.Close()
	assert.ErrorIs(t, q.Publish(context.Background(), docs), ErrClosed)
}
