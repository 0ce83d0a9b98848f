package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/velann/socialize-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(ctx context.Context, authorID, title, content, image string) (models.Post, error)
	UpdatePost(ctx context.Context, postID, authorID, title, content, image string) (models.Post, error)
	GetPostByID(ctx context.Context, id string) (models.Post, error)
	GetPostBySlug(ctx context.Context, postSlug string) (models.Post, error)
	ListPosts(ctx context.Context, page, limit int) (models.PostPage, error)
	LikePost(ctx context.Context, postID, accountID string) (models.Post, error)
	AddComment(ctx context.Context, postID, accountID, text string) (models.Comment, error)
	GetComments(ctx context.Context, postID string) ([]models.Comment, error)
}

// PostService provides business logic for post management.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

const postColumns = "id, author_id, title, slug, content, post_image, like_count, created_at, updated_at"

// CreatePost publishes a new post with a slug derived from the title.
func (s *PostService) CreatePost(ctx context.Context, authorID, title, content, image string) (models.Post, error) {
	now := time.Now()
	post := models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     title,
		Slug:      makeSlug(title),
		Content:   content,
		PostImage: image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (id, author_id, title, slug, content, post_image, like_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)",
		post.ID, post.AuthorID, post.Title, post.Slug, post.Content, post.PostImage, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost rewrites a post's content. Only the author may update it, and
// the slug is regenerated from the new title.
func (s *PostService) UpdatePost(ctx context.Context, postID, authorID, title, content, image string) (models.Post, error) {
	post, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if post.AuthorID != authorID {
		return models.Post{}, ErrNotPostAuthor
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE posts SET title = ?, slug = ?, content = ?, post_image = ?, updated_at = ? WHERE id = ? AND author_id = ?",
		title, makeSlug(title), content, image, time.Now(), postID, authorID)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(ctx, postID)
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	return scanPost(row)
}

// GetPostBySlug retrieves a single post by its slug.
func (s *PostService) GetPostBySlug(ctx context.Context, postSlug string) (models.Post, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE slug = ?", postSlug)
	return scanPost(row)
}

// ListPosts returns one page of posts, newest first, with the total count.
func (s *PostService) ListPosts(ctx context.Context, page, limit int) (models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return models.PostPage{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, (page-1)*limit)
	if err != nil {
		return models.PostPage{}, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Content,
			&post.PostImage, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return models.PostPage{}, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return models.PostPage{}, err
	}

	return models.PostPage{Posts: posts, Page: page, Limit: limit, TotalCount: total}, nil
}

// LikePost records a like. The composite primary key on post_likes makes
// the duplicate-like guard atomic: a second like from the same account hits
// the constraint, not a read-then-write race.
func (s *PostService) LikePost(ctx context.Context, postID, accountID string) (models.Post, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return models.Post{}, err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO post_likes (post_id, account_id, created_at) VALUES (?, ?, ?)",
		postID, accountID, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.Post{}, ErrAlreadyLiked
		}
		return models.Post{}, err
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE posts SET like_count = like_count + 1 WHERE id = ?", postID); err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(ctx, postID)
}

// AddComment appends a comment to a post.
func (s *PostService) AddComment(ctx context.Context, postID, accountID, text string) (models.Comment, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AccountID: accountID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (id, post_id, account_id, text, created_at) VALUES (?, ?, ?, ?, ?)",
		comment.ID, comment.PostID, comment.AccountID, comment.Text, comment.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// GetComments retrieves a post's comments, oldest first.
func (s *PostService) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, post_id, account_id, text, created_at FROM comments WHERE post_id = ? ORDER BY created_at ASC",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AccountID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// makeSlug derives a URL slug from the title with a short random suffix so
// equal titles never collide.
func makeSlug(title string) string {
	return slug.Make(title) + "-" + uuid.New().String()[:8]
}

func scanPost(row *sql.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Content,
		&post.PostImage, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}
