package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gather/config"
	"gather/internal/apperror"
	"gather/internal/database"
)

type CategoryRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Interest struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Slug     string       `json:"slug"`
	Category *CategoryRef `json:"category,omitempty"`
}

type SocialLink struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Profile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	ProfilePicture string       `json:"profilePicture"`
	Bio            string       `json:"bio"`
	Phone          string       `json:"phone,omitempty"`
	Gender         string       `json:"gender,omitempty"`
	DOB            *time.Time   `json:"dob,omitempty"`
	IsVerified     bool         `json:"isVerified"`
	IsOnboarded    bool         `json:"isOnboarded"`
	Interests      []Interest   `json:"interests"`
	Socials        []SocialLink `json:"socials"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type Service struct {
	repo Repository
	cfg  *config.Config
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

func (s *Service) Me(ctx context.Context, userID string) (*Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user id")
	}

	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return toProfile(user), nil
}

func (s *Service) ByUsername(ctx context.Context, username string) (*Profile, error) {
	user, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return toProfile(user), nil
}

func (s *Service) Update(ctx context.Context, userID string, input UpdateInput) (*Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid user id")
	}

	// The original assigns a random gendered avatar whenever the update
	// does not carry an explicit picture.
	if input.ProfilePicture == nil || *input.ProfilePicture == "" {
		url := RandomAvatarURL(s.cfg, input.Gender)
		input.ProfilePicture = &url
	}

	user, err := s.repo.UpdateProfile(ctx, id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return toProfile(user), nil
}

func toProfile(user *database.User) *Profile {
	interests := make([]Interest, 0, len(user.Interests))
	for _, link := range user.Interests {
		item := Interest{
			ID:    link.Interest.ID,
			Title: link.Interest.Title,
			Slug:  link.Interest.Slug,
		}
		if link.Interest.Category.ID != 0 {
			item.Category = &CategoryRef{
				ID:    link.Interest.Category.ID,
				Title: link.Interest.Category.Title,
				Slug:  link.Interest.Category.Slug,
			}
		}
		interests = append(interests, item)
	}

	socials := make([]SocialLink, 0, len(user.Socials))
	for _, s := range user.Socials {
		socials = append(socials, SocialLink{ID: s.ID, Type: string(s.Type), URL: s.URL})
	}

	return &Profile{
		ID:             user.ID.String(),
		Name:           user.Name,
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Phone:          user.Phone,
		Gender:         string(user.Gender),
		DOB:            user.DOB,
		IsVerified:     user.IsVerified,
		IsOnboarded:    user.IsOnboarded,
		Interests:      interests,
		Socials:        socials,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
