package usecase

import "go-social-backend/pkg/media"

// MediaStore is the slice of the media handler the usecases depend on.
// *media.Handler satisfies it; tests substitute a mock.
type MediaStore interface {
	Validate(filename string, data []byte, class string) error
	Save(filename string, data []byte, class string) (*media.Info, error)
	Delete(mediaURL string)
	SaveProfileImage(filename string, data []byte, allowedExts []string) (string, error)
	DeleteProfileImage(imageURL string)
}
