package memory

import (
	"testing"

	"games_api/internal/models"
	"games_api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) models.GameInput {
	return models.GameInput{Name: models.StringField(name)}
}

func TestStorage_Insert(t *testing.T) {
	t.Run("ids are sequential across batches", func(t *testing.T) {
		s := New()

		first := s.Insert([]models.GameInput{named("A"), named("B"), named("C")})
		second := s.Insert([]models.GameInput{named("D")})

		require.Len(t, first, 3)
		require.Len(t, second, 1)
		assert.Equal(t, int64(1), first[0].ID)
		assert.Equal(t, int64(2), first[1].ID)
		assert.Equal(t, int64(3), first[2].ID)
		assert.Equal(t, int64(4), second[0].ID)
		assert.Equal(t, 4, s.Len())
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := New()

		s.Insert([]models.GameInput{named("A"), named("B")})
		_, err := s.Delete(2)
		require.NoError(t, err)

		created := s.Insert([]models.GameInput{named("C")})
		assert.Equal(t, int64(3), created[0].ID)
	})

	t.Run("returned slice is detached from the store", func(t *testing.T) {
		s := New()

		created := s.Insert([]models.GameInput{named("A")})
		created[0].Name = models.StringField("changed")

		got, err := s.Get(1)
		require.NoError(t, err)
		name, _ := got.Name.String()
		assert.Equal(t, "A", name)
	})
}

func TestStorage_At(t *testing.T) {
	s := New()

	_, err := s.At(0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.At(-1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	s.Insert([]models.GameInput{named("A"), named("B"), named("C")})

	first, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	last, err := s.At(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), last.ID)

	_, err = s.At(3)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_Update(t *testing.T) {
	t.Run("only present fields are written", func(t *testing.T) {
		s := New()
		s.Insert([]models.GameInput{{
			Name:  models.StringField("A"),
			Genre: models.StringField("RPG"),
		}})

		updated, err := s.Update(1, models.GameInput{Genre: models.StringField("")})
		require.NoError(t, err)

		name, _ := updated.Name.String()
		genre, ok := updated.Genre.String()
		assert.Equal(t, "A", name)
		assert.True(t, ok)
		assert.Equal(t, "", genre)
	})

	t.Run("not found", func(t *testing.T) {
		s := New()

		_, err := s.Update(42, named("x"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStorage_Delete(t *testing.T) {
	s := New()
	s.Insert([]models.GameInput{named("A"), named("B"), named("C")})

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed.ID)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[1].ID)

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_Close(t *testing.T) {
	s := New()
	s.Insert([]models.GameInput{named("A")})

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.All())
}
