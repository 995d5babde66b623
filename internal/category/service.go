package category

import (
	"context"

	"gather/internal/apperror"
	"gather/internal/database"
)

type Category struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Interest struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CategoryID uint   `json:"categoryId"`
}

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	var rows []database.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(rows))
	for _, c := range rows {
		categories = append(categories, Category{ID: c.ID, Title: c.Title, Slug: c.Slug})
	}
	return categories, nil
}

// InterestsByCategories returns the interests of the given categories,
// ordered by title. Every id must exist.
func (s *Service) InterestsByCategories(ctx context.Context, categoryIDs []uint) ([]Interest, error) {
	var found int64
	err := s.db.WithContext(ctx).Model(&database.Category{}).
		Where("id IN ?", categoryIDs).
		Count(&found).Error
	if err != nil {
		return nil, err
	}
	if found != int64(len(categoryIDs)) {
		return nil, apperror.BadRequest("One or more category IDs are invalid")
	}

	var rows []database.Interest
	err = s.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	interests := make([]Interest, 0, len(rows))
	for _, i := range rows {
		interests = append(interests, Interest{
			ID:         i.ID,
			Title:      i.Title,
			Slug:       i.Slug,
			CategoryID: i.CategoryID,
		})
	}
	return interests, nil
}
