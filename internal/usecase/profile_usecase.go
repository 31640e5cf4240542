package usecase

import (
	"context"
	"strings"
	"time"

	"go-social-backend/internal/domain"
)

type profileUsecase struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	media       MediaStore
	imageExts   []string
}

func NewProfileUsecase(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, mediaStore MediaStore, imageExts []string) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		media:       mediaStore,
		imageExts:   imageExts,
	}
}

// Get assembles the full profile aggregate, lazily creating the profile row
// on first access.
func (u *profileUsecase) Get(ctx context.Context, userID int64) (*domain.ProfileView, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := u.profileRepo.ListSkills(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	experiences, err := u.profileRepo.ListExperiences(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	educations, err := u.profileRepo.ListEducations(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		skillNames = append(skillNames, s.Name)
	}
	if experiences == nil {
		experiences = []domain.Experience{}
	}
	if educations == nil {
		educations = []domain.Education{}
	}

	return &domain.ProfileView{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfileImage: user.ProfileImage,
		Phone:        user.Phone,
		Website:      user.Website,
		Headline:     user.Headline,
		Industry:     user.Industry,
		Company:      user.Company,
		JobTitle:     user.JobTitle,
		Bio:          profile.Bio,
		Location:     profile.Location,
		Skills:       skillNames,
		Experiences:  experiences,
		Educations:   educations,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

// Update applies an allow-listed patch. Child collections present in the
// patch replace the stored ones entirely; entries missing required content
// are dropped silently.
func (u *profileUsecase) Update(ctx context.Context, userID int64, patch domain.ProfilePatch) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	profile, err := u.profileRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.Website != nil {
		user.Website = patch.Website
	}
	if patch.Headline != nil {
		user.Headline = patch.Headline
	}
	if patch.Industry != nil {
		user.Industry = patch.Industry
	}
	if patch.Company != nil {
		user.Company = patch.Company
	}
	if patch.JobTitle != nil {
		user.JobTitle = patch.JobTitle
	}
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if patch.Bio != nil || patch.Location != nil {
		if patch.Bio != nil {
			profile.Bio = patch.Bio
		}
		if patch.Location != nil {
			profile.Location = patch.Location
		}
		if err := u.profileRepo.Update(ctx, profile); err != nil {
			return err
		}
	}

	if patch.Skills != nil {
		var skills []domain.Skill
		for _, name := range *patch.Skills {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			skills = append(skills, domain.Skill{ProfileID: profile.ID, Name: name})
		}
		if err := u.profileRepo.ReplaceSkills(ctx, profile.ID, skills); err != nil {
			return err
		}
	}

	if patch.Experiences != nil {
		var experiences []domain.Experience
		for _, exp := range *patch.Experiences {
			if exp.Title == "" && exp.Company == "" {
				continue
			}
			exp.ProfileID = profile.ID
			experiences = append(experiences, exp)
		}
		if err := u.profileRepo.ReplaceExperiences(ctx, profile.ID, experiences); err != nil {
			return err
		}
	}

	if patch.Educations != nil {
		var educations []domain.Education
		for _, edu := range *patch.Educations {
			if edu.School == "" && edu.Degree == "" {
				continue
			}
			edu.ProfileID = profile.ID
			educations = append(educations, edu)
		}
		if err := u.profileRepo.ReplaceEducations(ctx, profile.ID, educations); err != nil {
			return err
		}
	}

	return nil
}

// UploadImage stores a new profile picture and removes the previous one.
func (u *profileUsecase) UploadImage(ctx context.Context, userID int64, filename string, data []byte) (string, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	imageURL, err := u.media.SaveProfileImage(filename, data, u.imageExts)
	if err != nil {
		return "", err
	}

	if user.ProfileImage != nil && *user.ProfileImage != "" {
		u.media.DeleteProfileImage(*user.ProfileImage)
	}

	if err := u.userRepo.UpdateProfileImage(ctx, userID, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

// DeleteAccount cascades through profile children, the profile, and finally
// the user row; posts go with the user via the database cascade.
func (u *profileUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	if user.ProfileImage != nil && *user.ProfileImage != "" {
		u.media.DeleteProfileImage(*user.ProfileImage)
	}

	return u.userRepo.Delete(ctx, userID)
}
