package usecase_test

import (
	"context"
	"sync"
	"time"

	"go-social-backend/internal/domain"
	"go-social-backend/pkg/media"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepo) UpdateProfileImage(ctx context.Context, id int64, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepo) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepo) Update(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepo) IncrementViews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepo) IncrementLikes(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepo) PublishedTags(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

func (m *MockPostRepo) Stats(ctx context.Context, recentWindow time.Duration) (*domain.PostStats, error) {
	args := m.Called(ctx, recentWindow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostStats), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) ListSkills(ctx context.Context, profileID int64) ([]domain.Skill, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}

func (m *MockProfileRepo) ListExperiences(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *MockProfileRepo) ListEducations(ctx context.Context, profileID int64) ([]domain.Education, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Education), args.Error(1)
}

func (m *MockProfileRepo) ReplaceSkills(ctx context.Context, profileID int64, skills []domain.Skill) error {
	return m.Called(ctx, profileID, skills).Error(0)
}

func (m *MockProfileRepo) ReplaceExperiences(ctx context.Context, profileID int64, experiences []domain.Experience) error {
	return m.Called(ctx, profileID, experiences).Error(0)
}

func (m *MockProfileRepo) ReplaceEducations(ctx context.Context, profileID int64, educations []domain.Education) error {
	return m.Called(ctx, profileID, educations).Error(0)
}

func (m *MockProfileRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Validate(filename string, data []byte, class string) error {
	return m.Called(filename, data, class).Error(0)
}

func (m *MockMediaStore) Save(filename string, data []byte, class string) (*media.Info, error) {
	args := m.Called(filename, data, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Info), args.Error(1)
}

func (m *MockMediaStore) Delete(mediaURL string) {
	m.Called(mediaURL)
}

func (m *MockMediaStore) SaveProfileImage(filename string, data []byte, allowedExts []string) (string, error) {
	args := m.Called(filename, data, allowedExts)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) DeleteProfileImage(imageURL string) {
	m.Called(imageURL)
}

// fakeCache is an in-memory cache.Store that records invalidation patterns.
type fakeCache struct {
	mu           sync.Mutex
	entries      map[string][]byte
	invalidated  []string
	failingReads bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failingReads {
		return nil, false
	}
	val, ok := c.entries[key]
	return val, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Invalidate(ctx context.Context, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	c.entries = make(map[string][]byte)
}
