package repositories

import (
	"context"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
)

type Companies struct {
	store
}

func NewCompaniesRepository(c *DbContext) *Companies {
	return &Companies{store: newStore(c)}
}

func (repo *Companies) Create(ctx context.Context, company *models.Company) error {
	db, cancel := repo.session(ctx)
	defer cancel()
	return translate(db.Create(company).Error, "create company")
}

func (repo *Companies) GetByID(ctx context.Context, id string) (*models.Company, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get company")
	}
	return &company, nil
}

// Update writes the editable company fields; a taken name fails with ErrDuplicate.
func (repo *Companies) Update(ctx context.Context, company *models.Company) error {
	db, cancel := repo.session(ctx)
	defer cancel()

	res := db.Model(&models.Company{}).
		Where("id = ?", company.ID).
		Select("name", "description", "website", "location", "updated_at").
		Updates(company)
	if res.Error != nil {
		return translate(res.Error, "update company")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Companies) ListByOwner(ctx context.Context, ownerID string) ([]models.Company, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var companies []models.Company
	err := db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&companies).Error
	return companies, translate(err, "list companies")
}

func (repo *Companies) GetName(ctx context.Context, id string) (string, error) {
	company, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return company.Name, nil
}
