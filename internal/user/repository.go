package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gather/internal/apperror"
	"gather/internal/database"
)

// UpdateInput carries the optional profile fields of an update. Nil means
// "leave untouched"; Interests and Socials replace the stored sets when
// present.
type UpdateInput struct {
	Name           *string
	Phone          *string
	ProfilePicture *string
	DOB            *time.Time
	Gender         *database.Gender
	Bio            *string
	IsOnboarded    *bool
	Interests      []uint
	Socials        []SocialInput
}

type SocialInput struct {
	Type database.SocialType
	URL  string
}

type Repository interface {
	ByID(ctx context.Context, id uuid.UUID) (*database.User, error)
	ByUsername(ctx context.Context, username string) (*database.User, error)
	// UpdateProfile applies input inside a single transaction: interest and
	// social replacement and the scalar field patch succeed or fail together.
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateInput) (*database.User, error)
}

type gormRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ByID(ctx context.Context, id uuid.UUID) (*database.User, error) {
	var user database.User
	err := r.db.WithContext(ctx).
		Preload("Interests.Interest.Category").
		Preload("Socials").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) ByUsername(ctx context.Context, username string) (*database.User, error) {
	var user database.User
	err := r.db.WithContext(ctx).
		Preload("Interests.Interest.Category").
		Preload("Socials").
		First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateInput) (*database.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Interests != nil {
			if err := replaceInterests(tx, id, input.Interests); err != nil {
				return err
			}
		}
		if input.Socials != nil {
			if err := replaceSocials(tx, id, input.Socials); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.ProfilePicture != nil {
			updates["profile_picture"] = *input.ProfilePicture
		}
		if input.DOB != nil {
			updates["dob"] = *input.DOB
		}
		if input.Gender != nil {
			updates["gender"] = *input.Gender
		}
		if input.Bio != nil {
			updates["bio"] = *input.Bio
		}
		if input.IsOnboarded != nil {
			updates["is_onboarded"] = *input.IsOnboarded
		}

		res := tx.Model(&database.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.ByID(ctx, id)
}

func replaceInterests(tx *gorm.DB, userID uuid.UUID, interestIDs []uint) error {
	ids := dedupe(interestIDs)

	if len(ids) > 0 {
		var found int64
		if err := tx.Model(&database.Interest{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(ids)) {
			return apperror.BadRequest("One or more interests are invalid")
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&database.UserInterest{}).Error; err != nil {
		return err
	}
	for _, interestID := range ids {
		link := database.UserInterest{UserID: userID, InterestID: interestID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceSocials(tx *gorm.DB, userID uuid.UUID, socials []SocialInput) error {
	types := make([]database.SocialType, 0, len(socials))
	seen := map[database.SocialType]bool{}
	for _, s := range socials {
		if s.URL == "" || seen[s.Type] {
			continue
		}
		seen[s.Type] = true
		types = append(types, s.Type)

		social := database.Social{UserID: userID, Type: s.Type, URL: s.URL}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"url"}),
		}).Create(&social).Error
		if err != nil {
			return err
		}
	}

	del := tx.Where("user_id = ?", userID)
	if len(types) > 0 {
		del = del.Where("type NOT IN ?", types)
	}
	return del.Delete(&database.Social{}).Error
}

func dedupe(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
