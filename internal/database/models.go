package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type SocialType string

const (
	SocialTwitter   SocialType = "TWITTER"
	SocialInstagram SocialType = "INSTAGRAM"
	SocialLinkedIn  SocialType = "LINKEDIN"
	SocialFacebook  SocialType = "FACEBOOK"
	SocialGitHub    SocialType = "GITHUB"
	SocialOther     SocialType = "OTHER"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username       string     `gorm:"uniqueIndex;not null"`
	Name           string     `gorm:"not null"`
	Email          string     `gorm:"uniqueIndex;not null"`
	ProfilePicture string     ``
	Bio            string     ``
	Phone          string     ``
	Gender         Gender     ``
	DOB            *time.Time ``
	IsVerified     bool       `gorm:"not null;default:false"`
	IsOnboarded    bool       `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Interests []UserInterest `gorm:"foreignKey:UserID"`
	Socials   []Social       `gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// OTP is a one-time passcode issued for an email address. A record is live
// while it is unconsumed and unexpired; selection always prefers the most
// recently created live record.
type OTP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"index;not null"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"not null"`
	Slug  string `gorm:"uniqueIndex;not null"`
}

type Interest struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	Slug       string `gorm:"uniqueIndex;not null"`
	CategoryID uint   `gorm:"index;not null"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

type UserInterest struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_interest;not null"`
	InterestID uint      `gorm:"uniqueIndex:idx_user_interest;not null"`

	Interest Interest `gorm:"foreignKey:InterestID"`
}

type Social struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_user_social;not null"`
	Type   SocialType `gorm:"uniqueIndex:idx_user_social;not null"`
	URL    string     `gorm:"not null"`
}
