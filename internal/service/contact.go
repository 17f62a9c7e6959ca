package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

type ContactService struct {
	Repo   *repo.GormRepo
	Events Publisher
}

func (s *ContactService) Submit(ctx context.Context, req transport.ContactRequest) (*models.Contact, error) {
	c := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return nil, fmt.Errorf("name, email, subject and message are required: %w", ErrValidation)
	}

	if err := s.Repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicContactEvents, c.Email, map[string]any{
		"type":      "contact_submitted",
		"contactID": c.ID,
		"email":     c.Email,
		"subject":   c.Subject,
	})
	return c, nil
}
