package repositories

import (
	"context"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type contactRepository interface {
	GetContact(ctx context.Context, id string) (models.Contact, error)
}

// CachedContacts keeps applicant contact projections for notification text.
type CachedContacts struct {
	repo  contactRepository
	cache *gocache.Cache
}

func NewCachedContacts(repo contactRepository) *CachedContacts {
	return &CachedContacts{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c CachedContacts) GetContact(ctx context.Context, id string) (models.Contact, error) {
	if value, found := c.cache.Get(id); found {
		return value.(models.Contact), nil
	}

	contact, err := c.repo.GetContact(ctx, id)
	if err != nil {
		return contact, err
	}

	c.cache.SetDefault(id, contact)
	return contact, nil
}

// Forget drops a cached contact after the user's profile changed.
func (c CachedContacts) Forget(id string) {
	c.cache.Delete(id)
}
