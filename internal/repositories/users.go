package repositories

import (
	"context"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"gorm.io/gorm/clause"
)

type Users struct {
	store
}

func NewUsersRepository(c *DbContext) *Users {
	return &Users{store: newStore(c)}
}

func (repo *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

// Save inserts the user or overwrites its profile fields.
func (repo *Users) Save(ctx context.Context, user *models.User) error {
	db, cancel := repo.session(ctx)
	defer cancel()

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "role", "resume_url", "updated_at"}),
	}).Create(user).Error
	return translate(err, "save user")
}

func (repo *Users) GetContact(ctx context.Context, id string) (models.Contact, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	return models.Contact{Email: user.Email, Name: user.FullName}, nil
}
