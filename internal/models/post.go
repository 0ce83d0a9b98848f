package models

import "time"

// Post is a published article. Slugs are unique and derived from the title
// at creation time.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	PostImage string    `json:"postImage,omitempty"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a reader's comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AccountID string    `json:"accountId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalCount int    `json:"totalCount"`
}
