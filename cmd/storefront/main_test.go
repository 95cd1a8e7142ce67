package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/core/session"
	"github.com/cbcbeauty/storefront/core/store"
)

// rejectingBackend fails every request, standing in for an unreachable backend.
type rejectingBackend struct{}

func (rejectingBackend) Get(context.Context, string, any) error {
	return errors.New("connection refused")
}

func (rejectingBackend) Post(context.Context, string, any, any) error {
	return errors.New("connection refused")
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	return &app{
		session: session.NewManager(store.NewMemory(), rejectingBackend{}),
	}
}

func TestLoginCommand(t *testing.T) {
	t.Parallel()

	t.Run("failed login surfaces as error", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t)
		err := a.login(context.Background(), []string{"jane@example.com", "secret123"})
		require.Error(t, err)
		assert.EqualError(t, err, "Login failed")
	})

	t.Run("wrong argument count", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t)
		assert.Error(t, a.login(context.Background(), []string{"jane@example.com"}))
	})
}

func TestRegisterCommand(t *testing.T) {
	t.Parallel()

	t.Run("validation message surfaces as error", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t)
		err := a.register(context.Background(), []string{"Jane", "jane@example.com", "123"})
		require.Error(t, err)
		assert.EqualError(t, err, "Password must be at least 6 characters")
	})
}
