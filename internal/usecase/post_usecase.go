package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"
	"go-social-backend/pkg/cache"
	"go-social-backend/pkg/media"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50

	recentWindow = 7 * 24 * time.Hour

	listCachePrefix = "posts:list:"
	listCacheTTL    = 60 * time.Second

	categoriesKey    = "posts:categories"
	categoriesTTL    = 10 * time.Minute
	categoriesLimit  = 20
	popularTagsKey   = "posts:popular_tags"
	popularTagsTTL   = 5 * time.Minute
	popularTagsLimit = 15
	statsKey         = "posts:stats"
	statsTTL         = 5 * time.Minute
)

var allowedSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"likes_count":    true,
	"views_count":    true,
	"comments_count": true,
	"shares_count":   true,
}

type postUsecase struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
	media    MediaStore
	cache    cache.Store
}

func NewPostUsecase(postRepo domain.PostRepository, userRepo domain.UserRepository, mediaStore MediaStore, cacheStore cache.Store) domain.PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		userRepo: userRepo,
		media:    mediaStore,
		cache:    cacheStore,
	}
}

// List serves the feed with dynamic filter/sort/paginate composition. The
// normalized parameter set keys a short-lived cache; any cache failure is a
// miss and the query falls through to the database.
func (u *postUsecase) List(ctx context.Context, filter domain.PostFilter) (*domain.PostPage, error) {
	filter = normalizeFilter(filter)

	key := listCacheKey(filter)
	if data, ok := u.cache.Get(ctx, key); ok {
		var page domain.PostPage
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
	}

	posts, total, err := u.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	totalPages := int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))
	page := &domain.PostPage{
		Posts: posts,
		Pagination: domain.Pagination{
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
		Filters: filter,
	}

	if data, err := json.Marshal(page); err == nil {
		u.cache.Set(ctx, key, data, listCacheTTL)
	}
	return page, nil
}

func (u *postUsecase) Create(ctx context.Context, userID int64, input domain.CreatePostInput) (*domain.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.BadRequest("Post content cannot be empty")
	}
	// Ceiling is in characters, not bytes
	if utf8.RuneCountInString(content) > domain.MaxPostContentLength {
		return nil, apperror.BadRequest("Post content is too long (max 10,000 characters)")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &domain.Post{
		UserID:      userID,
		Content:     content,
		Title:       input.Title,
		Tags:        input.Tags,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if len(input.MediaData) > 0 {
		if !media.IsValidClass(input.MediaType) {
			return nil, apperror.BadRequest("Invalid media type. Allowed: image, video, gif")
		}
		if err := u.media.Validate(input.MediaFilename, input.MediaData, input.MediaType); err != nil {
			return nil, err
		}
		info, err := u.media.Save(input.MediaFilename, input.MediaData, input.MediaType)
		if err != nil {
			return nil, err
		}
		post.MediaURL = &info.URL
		post.MediaType = &info.MediaType
		post.MediaMetadata = info.Metadata
	}

	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Coarse invalidation: any new post may appear in any cached listing
	u.cache.Invalidate(ctx, listCachePrefix+"*")

	post.User = &domain.UserSummary{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfileImage: user.ProfileImage,
	}
	return post, nil
}

// Get returns a post and bumps its view counter. Views are unconditional;
// the same caller reading twice counts twice.
func (u *postUsecase) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.postRepo.IncrementViews(ctx, id); err == nil {
		post.ViewsCount++
	}
	return post, nil
}

func (u *postUsecase) Update(ctx context.Context, id, userID int64, patch domain.PostPatch) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, apperror.Forbidden("You can only edit your own posts")
	}

	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, apperror.BadRequest("Post content cannot be empty")
		}
		if utf8.RuneCountInString(content) > domain.MaxPostContentLength {
			return nil, apperror.BadRequest("Post content is too long (max 10,000 characters)")
		}
		post.Content = content
	}
	if patch.Title != nil {
		post.Title = patch.Title
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}
	if patch.Published != nil {
		post.IsPublished = *patch.Published
	}
	post.UpdatedAt = time.Now()

	if err := u.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx, listCachePrefix+"*")
	return post, nil
}

func (u *postUsecase) Delete(ctx context.Context, id, userID int64) error {
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperror.Forbidden("You can only delete your own posts")
	}

	if err := u.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Best-effort: a leftover file never blocks record deletion
	if post.MediaURL != nil {
		u.media.Delete(*post.MediaURL)
	}

	u.cache.Invalidate(ctx, listCachePrefix+"*")
	return nil
}

func (u *postUsecase) Like(ctx context.Context, id int64) (int, error) {
	return u.postRepo.IncrementLikes(ctx, id)
}

func (u *postUsecase) Categories(ctx context.Context) ([]domain.TagCount, error) {
	return u.topTags(ctx, categoriesKey, categoriesLimit, categoriesTTL)
}

func (u *postUsecase) PopularTags(ctx context.Context) ([]domain.TagCount, error) {
	return u.topTags(ctx, popularTagsKey, popularTagsLimit, popularTagsTTL)
}

func (u *postUsecase) Stats(ctx context.Context) (*domain.PostStats, error) {
	if data, ok := u.cache.Get(ctx, statsKey); ok {
		var stats domain.PostStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := u.postRepo.Stats(ctx, recentWindow)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		u.cache.Set(ctx, statsKey, data, statsTTL)
	}
	return stats, nil
}

// topTags aggregates tag frequency across published posts in memory and
// returns the most used ones.
func (u *postUsecase) topTags(ctx context.Context, key string, limit int, ttl time.Duration) ([]domain.TagCount, error) {
	if data, ok := u.cache.Get(ctx, key); ok {
		var tags []domain.TagCount
		if err := json.Unmarshal(data, &tags); err == nil {
			return tags, nil
		}
	}

	lists, err := u.postRepo.PublishedTags(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, tags := range lists {
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}

	result := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	if len(result) > limit {
		result = result[:limit]
	}

	if data, err := json.Marshal(result); err == nil {
		u.cache.Set(ctx, key, data, ttl)
	}
	return result, nil
}

// normalizeFilter applies the page/size clamps and the sort allow-list.
// An unrecognized sort field deterministically falls back to created_at desc.
func normalizeFilter(f domain.PostFilter) domain.PostFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}

	if !allowedSortFields[f.SortBy] {
		f.SortBy = "created_at"
		f.SortOrder = "desc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}

	if f.Visibility != "featured" && f.Visibility != "recent" {
		f.Visibility = ""
	}

	return f
}

// listCacheKey derives a stable key from the full normalized parameter set.
func listCacheKey(f domain.PostFilter) string {
	data, _ := json.Marshal(f)
	sum := sha256.Sum256(data)
	return listCachePrefix + hex.EncodeToString(sum[:16])
}
