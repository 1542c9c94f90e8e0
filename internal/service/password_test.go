package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/store"
	"github.com/composersite/catalog/internal/tester"
)

func TestPasswordService_Verify(t *testing.T) {
	tester.Reset()
	s := store.NewGormStore(tester.TestDB())

	locked := tester.Work("work-locked", "Crossfire", "crossfire")
	locked.PasswordOverride = "OpenSesame"
	open := tester.Work("work-open", "Stuck-Stuck", "stuck-stuck")
	require.NoError(t, s.PutDocuments(context.Background(), []model.Document{locked, open, tester.Settings("Default")}))

	service := NewPasswordService(s)
	tests := []struct {
		name     string
		password string
		workID   string
		err      error
	}{
		{"missing password", "", "work-locked", ErrPasswordRequired},
		{"override matches", "opensesame", "work-locked", nil},
		{"default rejected when override set", "default", "work-locked", ErrIncorrectPassword},
		{"default used without override", "DEFAULT", "work-open", nil},
		{"default used without work", "default", "", nil},
		{"unknown work falls back", "default", "work-missing", nil},
		{"wrong password", "nope", "", ErrIncorrectPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Verify(context.Background(), tt.password, tt.workID)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPasswordService_NotConfigured(t *testing.T) {
	tester.Reset()
	s := store.NewGormStore(tester.TestDB())
	require.NoError(t, s.PutDocuments(context.Background(), []model.Document{tester.Work("work-open", "Stuck-Stuck", "stuck-stuck")}))

	err := NewPasswordService(s).Verify(context.Background(), "anything", "work-open")
	assert.ErrorIs(t, err, ErrPasswordNotConfigured)
}
