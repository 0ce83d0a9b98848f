package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/velann/socialize-be/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func insertTestAccount(t *testing.T, db *sql.DB, id, username string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO accounts (id, username, email, password_hash, created_at) VALUES (?, ?, ?, 'hash', ?)",
		id, username, username+"@x.com", time.Now())
	require.NoError(t, err)
}

func TestCreatePostGeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")

	first, err := svc.CreatePost(ctx, "a1", "Hello World", "content", "")
	require.NoError(t, err)
	require.Contains(t, first.Slug, "hello-world")

	// Equal titles still get distinct slugs.
	second, err := svc.CreatePost(ctx, "a1", "Hello World", "content", "")
	require.NoError(t, err)
	require.NotEqual(t, first.Slug, second.Slug)

	got, err := svc.GetPostBySlug(ctx, first.Slug)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")
	insertTestAccount(t, db, "a2", "bob")

	post, err := svc.CreatePost(ctx, "a1", "Original Title", "content", "")
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, post.ID, "a2", "Hijacked", "content", "")
	require.ErrorIs(t, err, ErrNotPostAuthor)

	updated, err := svc.UpdatePost(ctx, post.ID, "a1", "New Title", "new content", "")
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.Title)
	require.Contains(t, updated.Slug, "new-title")
}

func TestLikePostOncePerAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")
	insertTestAccount(t, db, "a2", "bob")

	post, err := svc.CreatePost(ctx, "a1", "Likeable", "content", "")
	require.NoError(t, err)

	liked, err := svc.LikePost(ctx, post.ID, "a2")
	require.NoError(t, err)
	require.Equal(t, 1, liked.LikeCount)

	_, err = svc.LikePost(ctx, post.ID, "a2")
	require.ErrorIs(t, err, ErrAlreadyLiked)

	_, err = svc.LikePost(ctx, "missing", "a2")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")

	post, err := svc.CreatePost(ctx, "a1", "Commentable", "content", "")
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, post.ID, "a1", "first!")
	require.NoError(t, err)
	require.Equal(t, post.ID, comment.PostID)

	comments, err := svc.GetComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "first!", comments[0].Text)
}

func TestListPostsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	insertTestAccount(t, db, "a1", "alice")

	for i := 0; i < 7; i++ {
		_, err := svc.CreatePost(ctx, "a1", fmt.Sprintf("Post %d", i), "content", "")
		require.NoError(t, err)
	}

	page, err := svc.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Posts, 5)
	require.Equal(t, 7, page.TotalCount)

	page, err = svc.ListPosts(ctx, 2, 5)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	// Out-of-range pages are empty, not an error.
	page, err = svc.ListPosts(ctx, 3, 5)
	require.NoError(t, err)
	require.Empty(t, page.Posts)
}
