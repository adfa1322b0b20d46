package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type companyStore interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Company, error)
}

type userStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type contactForgetter interface {
	Forget(id string)
}

// CompanyUpdate is a partial company edit; nil fields are left as stored.
type CompanyUpdate struct {
	Name        *string
	Description *string
	Website     *string
	Location    *string
}

// CompanyRegistry owns the minimal company records jobs point at.
type CompanyRegistry struct {
	companies companyStore
}

func NewCompanyRegistry(companies companyStore) *CompanyRegistry {
	return &CompanyRegistry{companies: companies}
}

func (r *CompanyRegistry) Register(ctx context.Context, ownerID, name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, rejected("register_company", apperr.Validation("companyName", "Company name is required."))
	}

	company := &models.Company{ID: uuid.NewString(), Name: name, OwnerID: ownerID}
	if err := r.companies.Create(ctx, company); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, rejected("register_company", apperr.Conflict("You can't register same company."))
		}
		return nil, storeError(err, "Company not found.")
	}

	log.Infof("company %s registered by %s", company.ID, ownerID)
	return company, nil
}

func (r *CompanyRegistry) Get(ctx context.Context, id string) (*models.Company, error) {
	company, err := r.companies.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Company not found.")
	}
	return company, nil
}

// Update edits the company's profile fields; only the owner may change them.
func (r *CompanyRegistry) Update(ctx context.Context, ownerID, id string, update CompanyUpdate) (*models.Company, error) {
	company, err := r.companies.GetByID(ctx, id)
	if err != nil {
		return nil, rejected("update_company", storeError(err, "Company not found."))
	}
	if company.OwnerID != ownerID {
		return nil, rejected("update_company", apperr.Authorization("You are not authorized to update this company."))
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, rejected("update_company", apperr.Validation("name", "Company name is required."))
		}
		company.Name = name
	}
	if update.Description != nil {
		company.Description = strings.TrimSpace(*update.Description)
	}
	if update.Website != nil {
		company.Website = strings.TrimSpace(*update.Website)
	}
	if update.Location != nil {
		company.Location = strings.TrimSpace(*update.Location)
	}

	if err := r.companies.Update(ctx, company); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, rejected("update_company", apperr.Conflict("A company with this name already exists."))
		}
		return nil, storeError(err, "Company not found.")
	}

	log.Infof("company %s updated by %s", company.ID, ownerID)
	return company, nil
}

func (r *CompanyRegistry) ListOwned(ctx context.Context, ownerID string) ([]models.Company, error) {
	companies, err := r.companies.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "Companies not found.")
	}
	return companies, nil
}

// ProfileUpdate is a partial profile edit; nil fields are left as stored.
type ProfileUpdate struct {
	FullName  *string
	Email     *string
	Role      *string
	ResumeURL *string
}

// Profiles maintains the identity projection: contact data and the resume reference.
type Profiles struct {
	users    userStore
	contacts contactForgetter
}

func NewProfiles(users userStore, contacts contactForgetter) *Profiles {
	return &Profiles{users: users, contacts: contacts}
}

func (p *Profiles) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found.")
	}
	return user, nil
}

// Update creates the profile on first use.
func (p *Profiles) Update(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := p.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		user, err = &models.User{ID: userID, Role: models.RoleStudent}, nil
	}
	if err != nil {
		return nil, storeError(err, "User not found.")
	}

	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.ResumeURL != nil {
		user.ResumeURL = strings.TrimSpace(*update.ResumeURL)
	}
	if update.Role != nil {
		switch role := models.Role(strings.ToLower(strings.TrimSpace(*update.Role))); role {
		case models.RoleStudent, models.RoleRecruiter:
			user.Role = role
		default:
			return nil, rejected("update_profile", apperr.Validation("role", "role must be student or recruiter."))
		}
	}

	if err := p.users.Save(ctx, user); err != nil {
		return nil, storeError(err, "User not found.")
	}
	if p.contacts != nil {
		p.contacts.Forget(userID)
	}
	return user, nil
}
