package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Columns eligible for ORDER BY. Anything else falls back to created_at.
var postSortColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"likes_count":    true,
	"views_count":    true,
	"comments_count": true,
	"shares_count":   true,
}

const postColumns = `p.id, p.user_id, p.content, p.title, p.media_url, p.media_type, p.media_metadata,
	p.tags, p.is_published, p.is_featured, p.likes_count, p.comments_count, p.shares_count,
	p.views_count, p.created_at, p.updated_at,
	u.id, u.username, u.first_name, u.last_name, u.profile_image`

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `INSERT INTO posts (user_id, content, title, media_url, media_type, media_metadata,
				tags, is_published, is_featured, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		post.UserID, post.Content, post.Title, post.MediaURL, post.MediaType, post.MediaMetadata,
		post.Tags, post.IsPublished, post.IsFeatured, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + `
              FROM posts p JOIN users u ON p.user_id = u.id
              WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, apperror.Internal(err)
	}
	return post, nil
}

// List composes the filter/sort/paginate query. Only published posts are
// eligible regardless of filters. The caller normalizes sort and page inputs;
// the sort column is still checked here before entering the SQL string.
func (r *postRepo) List(ctx context.Context, f domain.PostFilter) ([]domain.Post, int64, error) {
	conds := []string{"p.is_published = TRUE"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.UserID != nil {
		conds = append(conds, "p.user_id = "+arg(*f.UserID))
	}
	if f.Search != "" {
		pattern := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(p.content ILIKE %s OR p.title ILIKE %s OR array_to_string(p.tags, ' ') ILIKE %s)",
			pattern, pattern, pattern))
	}
	if len(f.Tags) > 0 {
		conds = append(conds, "p.tags && "+arg(f.Tags))
	}
	switch f.Visibility {
	case "featured":
		conds = append(conds, "p.is_featured = TRUE")
	case "recent":
		conds = append(conds, "p.created_at >= "+arg(time.Now().AddDate(0, 0, -7)))
	}

	where := strings.Join(conds, " AND ")

	sortBy := f.SortBy
	if !postSortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts p WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperror.Internal(err)
	}

	offset := (f.Page - 1) * f.PerPage
	query := fmt.Sprintf(`SELECT `+postColumns+`
              FROM posts p JOIN users u ON p.user_id = u.id
              WHERE %s ORDER BY p.%s %s LIMIT %s OFFSET %s`,
		where, sortBy, direction, arg(f.PerPage), arg(offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, apperror.Internal(err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.Internal(err)
	}

	return posts, total, nil
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	query := `UPDATE posts SET content = $2, title = $3, tags = $4, is_published = $5, updated_at = $6
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Content, post.Title, post.Tags, post.IsPublished, post.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Post not found")
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Post not found")
	}
	return nil
}

// IncrementViews bumps the view counter unconditionally. No deduplication by
// caller identity; repeated reads inflate the count.
func (r *postRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE posts SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *postRepo) IncrementLikes(ctx context.Context, id int64) (int, error) {
	var likes int
	err := r.db.QueryRow(ctx,
		`UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count`, id,
	).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NotFound("Post not found")
		}
		return 0, apperror.Internal(err)
	}
	return likes, nil
}

// PublishedTags returns the raw tag lists of all published posts. Frequency
// aggregation happens in memory at the usecase layer.
func (r *postRepo) PublishedTags(ctx context.Context) ([][]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tags FROM posts WHERE is_published = TRUE AND tags IS NOT NULL`)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var all [][]string
	for rows.Next() {
		var tags []string
		if err := rows.Scan(&tags); err != nil {
			return nil, apperror.Internal(err)
		}
		all = append(all, tags)
	}
	return all, rows.Err()
}

func (r *postRepo) Stats(ctx context.Context, recentWindow time.Duration) (*domain.PostStats, error) {
	query := `SELECT COUNT(*),
                     COUNT(*) FILTER (WHERE is_featured),
                     COUNT(*) FILTER (WHERE created_at >= $1),
                     COALESCE(SUM(likes_count), 0),
                     COALESCE(SUM(views_count), 0)
              FROM posts WHERE is_published = TRUE`
	var stats domain.PostStats
	err := r.db.QueryRow(ctx, query, time.Now().Add(-recentWindow)).Scan(
		&stats.TotalPosts, &stats.FeaturedPosts, &stats.RecentPosts,
		&stats.TotalLikes, &stats.TotalViews,
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &stats, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var user domain.UserSummary
	err := row.Scan(
		&post.ID, &post.UserID, &post.Content, &post.Title, &post.MediaURL, &post.MediaType,
		&post.MediaMetadata, &post.Tags, &post.IsPublished, &post.IsFeatured,
		&post.LikesCount, &post.CommentsCount, &post.SharesCount, &post.ViewsCount,
		&post.CreatedAt, &post.UpdatedAt,
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.User = &user
	return &post, nil
}
