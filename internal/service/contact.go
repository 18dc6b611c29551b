package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/contacts/internal/cache"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
)

// ContactService owns contact lifecycle rules - id and creation time
// assignment, default status, merge-style updates
type ContactService interface {
	Create(context.Context, model.NewContact) (*model.Contact, error)
	FindAll(context.Context, repository.ListFilter) ([]*model.Contact, error)
	FindByID(context.Context, string) (*model.Contact, error)
	UpdateByID(context.Context, model.UpdateContact) (*model.Contact, error)
	DeleteByID(context.Context, string) error
}

type contactService struct {
	contactRepo  repository.ContactRepository
	contactCache cache.ContactCacheRepository
}

// NewContactService builds ContactService
func NewContactService(contactRepo repository.ContactRepository, contactCache cache.ContactCacheRepository) ContactService {
	return &contactService{contactRepo: contactRepo, contactCache: contactCache}
}

func (s *contactService) Create(ctx context.Context, nc model.NewContact) (*model.Contact, error) {
	status := nc.Status
	if status == "" {
		status = model.DefaultStatus
	}

	c := &model.Contact{
		ID:        uuid.NewString(),
		Name:      nc.Name,
		Company:   nc.Company,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) FindAll(ctx context.Context, filter repository.ListFilter) ([]*model.Contact, error) {
	contacts, err := s.contactRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *contactService) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := s.contactCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, nil
	}

	if err := s.contactCache.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateByID merges supplied fields into existing contact. Missing id is not
// an error - nil contact is returned and nothing is persisted
func (s *contactService) UpdateByID(ctx context.Context, upd model.UpdateContact) (*model.Contact, error) {
	existing, err := s.contactRepo.FindByID(ctx, upd.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, nil
	}

	merged := existing.Merge(upd)

	if err := s.contactCache.DeleteByID(ctx, upd.ID); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// DeleteByID is idempotent - deletion of missing contact is not an error
func (s *contactService) DeleteByID(ctx context.Context, id string) error {
	if err := s.contactCache.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.contactRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	return nil
}
