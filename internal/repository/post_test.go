package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"postly/internal/cache"
	"postly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Content: "hello world"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success with like count", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "content", "likes_count"}).
			AddRow(5, 1, "a post", 3)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(5, 1).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, uint(1), post.UserID)
		assert.Equal(t, 3, post.LikesCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 99)
		assert.Nil(t, post)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_GetByID_ServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	defer cache.Close()

	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "likes_count"}).
		AddRow(5, 1, "a post", 3)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(5, 1).
		WillReturnRows(rows)

	// First read goes to the database and populates the cache.
	post, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.PostKey(5)))
	assert.NoError(t, mock.ExpectationsWereMet())

	// Second read is served from the cache; no further query is expected.
	cached, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, post.Content, cached.Content)
	assert.Equal(t, post.LikesCount, cached.LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())

	// A toggle invalidates the cached post so its like count stays fresh.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Unlike(ctx, 1, 5))
	assert.False(t, mr.Exists(cache.PostKey(5)))
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{ID: 5, UserID: 1, Content: "edited"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{"liked", 1, true},
		{"not liked", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
				WithArgs(1, 5).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			liked, err := repo.IsLiked(ctx, 1, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, liked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_Like_IsIdempotentInsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// The insert carries ON CONFLICT DO NOTHING so a concurrent duplicate
	// is absorbed rather than surfaced as a unique violation.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes" ("user_id","post_id","created_at") VALUES ($1,$2,$3) ON CONFLICT ("user_id","post_id") DO NOTHING RETURNING "id"`)).
		WithArgs(1, 5, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	err := repo.Like(ctx, 1, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("deletes the like row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Unlike(ctx, 1, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent like is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Unlike(ctx, 1, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Unlike(ctx, 1, 5)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeStorage, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
