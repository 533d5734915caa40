package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/internal/account/models"
	"medibook/pkg/domain"
)

func user(id, email string) models.User {
	return models.User{ID: id, Email: email, Role: domain.RolePatient, FirstName: "Ada"}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find by id and email", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Save(ctx, user("u1", "ada@example.com")))

		byID, err := s.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", byID.Email)

		byEmail, err := s.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", byEmail.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Save(ctx, user("u1", "ada@example.com")))

		err := s.Save(ctx, user("u2", "ada@example.com"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("update replaces the record", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Save(ctx, user("u1", "ada@example.com")))

		updated := user("u1", "ada@example.com")
		updated.FirstName = "Augusta"
		require.NoError(t, s.Update(ctx, updated))

		got, err := s.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Augusta", got.FirstName)
	})

	t.Run("misses surface ErrNotFound", func(t *testing.T) {
		s := NewInMemoryStore()

		_, err := s.FindByID(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Update(ctx, user("ghost", "g@example.com")), ErrNotFound)
	})
}
