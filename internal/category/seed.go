package category

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gather/internal/database"
)

var catalog = map[string][]string{
	"Sports & Fitness":  {"Running", "Cycling", "Yoga", "Football", "Climbing"},
	"Arts & Culture":    {"Photography", "Painting", "Theatre", "Live Music"},
	"Tech":              {"Programming", "AI & ML", "Game Development", "Open Source"},
	"Food & Drink":      {"Cooking", "Coffee", "Craft Beer", "Baking"},
	"Outdoors & Travel": {"Hiking", "Camping", "Road Trips", "City Walks"},
	"Games":             {"Board Games", "Chess", "Video Games", "Trivia"},
}

// Seed fills the category and interest tables. It is idempotent; existing
// slugs are left untouched.
func (s *Service) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for title, interests := range catalog {
			cat := database.Category{Title: title, Slug: slugify(title)}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).Create(&cat).Error
			if err != nil {
				return err
			}
			if cat.ID == 0 {
				if err := tx.Where("slug = ?", cat.Slug).First(&cat).Error; err != nil {
					return err
				}
			}

			for _, interestTitle := range interests {
				interest := database.Interest{
					Title:      interestTitle,
					Slug:       slugify(interestTitle),
					CategoryID: cat.ID,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "slug"}},
					DoNothing: true,
				}).Create(&interest).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func slugify(title string) string {
	out := make([]rune, 0, len(title))
	lastDash := true
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
			lastDash = false
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
