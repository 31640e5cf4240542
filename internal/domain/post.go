package domain

import (
	"context"
	"time"
)

const MaxPostContentLength = 10000

type Post struct {
	ID            int64                  `json:"id"`
	UserID        int64                  `json:"user_id"`
	Content       string                 `json:"content"`
	Title         *string                `json:"title"`
	MediaURL      *string                `json:"media_url"`
	MediaType     *string                `json:"media_type"`
	MediaMetadata map[string]interface{} `json:"media_metadata"`
	Tags          []string               `json:"tags"`
	IsPublished   bool                   `json:"is_published"`
	IsFeatured    bool                   `json:"is_featured"`
	LikesCount    int                    `json:"likes_count"`
	CommentsCount int                    `json:"comments_count"`
	SharesCount   int                    `json:"shares_count"`
	ViewsCount    int                    `json:"views_count"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	User          *UserSummary           `json:"user,omitempty"`
}

// PostFilter is the full parameter set of a listing query. It also serves as
// the cache key material, so every field that changes the result belongs here.
type PostFilter struct {
	UserID     *int64   `json:"user_id,omitempty"`
	Search     string   `json:"search,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Visibility string   `json:"visibility,omitempty"` // "", "featured", "recent"
	SortBy     string   `json:"sort_by"`
	SortOrder  string   `json:"sort_order"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
}

// PostPatch carries an allow-listed post update; nil fields stay untouched.
type PostPatch struct {
	Content   *string   `json:"content"`
	Title     *string   `json:"title"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
	Filters    PostFilter `json:"filters"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type PostStats struct {
	TotalPosts    int64 `json:"total_posts"`
	FeaturedPosts int64 `json:"featured_posts"`
	RecentPosts   int64 `json:"recent_posts"`
	TotalLikes    int64 `json:"total_likes"`
	TotalViews    int64 `json:"total_views"`
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, filter PostFilter) ([]Post, int64, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (int, error)
	PublishedTags(ctx context.Context) ([][]string, error)
	Stats(ctx context.Context, recentWindow time.Duration) (*PostStats, error)
}

// CreatePostInput is everything the create endpoint accepts. Media is raw
// here; it is validated and stored only after the content checks pass.
type CreatePostInput struct {
	Content       string
	Title         *string
	Tags          []string
	MediaFilename string
	MediaData     []byte
	MediaType     string
}

type PostUsecase interface {
	List(ctx context.Context, filter PostFilter) (*PostPage, error)
	Create(ctx context.Context, userID int64, input CreatePostInput) (*Post, error)
	Get(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, id, userID int64, patch PostPatch) (*Post, error)
	Delete(ctx context.Context, id, userID int64) error
	Like(ctx context.Context, id int64) (int, error)
	Categories(ctx context.Context) ([]TagCount, error)
	PopularTags(ctx context.Context) ([]TagCount, error)
	Stats(ctx context.Context) (*PostStats, error)
}
