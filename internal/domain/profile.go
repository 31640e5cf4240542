package domain

import (
	"context"
	"time"
)

type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Bio       *string   `json:"bio"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Skill struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"-"`
	Name      string `json:"name"`
}

// Experience dates arrive as ISO strings from clients; a nil end date means
// the position is current.
type Experience struct {
	ID          int64   `json:"id"`
	ProfileID   int64   `json:"-"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

type Education struct {
	ID        int64   `json:"id"`
	ProfileID int64   `json:"-"`
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	Field     string  `json:"field"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// ProfileView is the aggregate returned by GET /profile: user attributes,
// profile attributes, and the owned child collections in one document.
type ProfileView struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FirstName    *string      `json:"first_name"`
	LastName     *string      `json:"last_name"`
	ProfileImage *string      `json:"profile_image"`
	Phone        *string      `json:"phone"`
	Website      *string      `json:"website"`
	Headline     *string      `json:"headline"`
	Industry     *string      `json:"industry"`
	Company      *string      `json:"company"`
	JobTitle     *string      `json:"job_title"`
	Bio          *string      `json:"bio"`
	Location     *string      `json:"location"`
	Skills       []string     `json:"skills"`
	Experiences  []Experience `json:"experiences"`
	Educations   []Education  `json:"educations"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProfilePatch carries an allow-listed profile update. Nil fields are left
// untouched; a non-nil child collection replaces the stored one entirely.
type ProfilePatch struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Website   *string `json:"website"`
	Headline  *string `json:"headline"`
	Industry  *string `json:"industry"`
	Company   *string `json:"company"`
	JobTitle  *string `json:"job_title"`

	Bio      *string `json:"bio"`
	Location *string `json:"location"`

	Skills      *[]string     `json:"skills"`
	Experiences *[]Experience `json:"experiences"`
	Educations  *[]Education  `json:"educations"`
}

type ProfileRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	ListSkills(ctx context.Context, profileID int64) ([]Skill, error)
	ListExperiences(ctx context.Context, profileID int64) ([]Experience, error)
	ListEducations(ctx context.Context, profileID int64) ([]Education, error)
	ReplaceSkills(ctx context.Context, profileID int64, skills []Skill) error
	ReplaceExperiences(ctx context.Context, profileID int64, experiences []Experience) error
	ReplaceEducations(ctx context.Context, profileID int64, educations []Education) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID int64) (*ProfileView, error)
	Update(ctx context.Context, userID int64, patch ProfilePatch) error
	UploadImage(ctx context.Context, userID int64, filename string, data []byte) (string, error)
	DeleteAccount(ctx context.Context, userID int64) error
}
