package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

type BannerService struct {
	Repo   *repo.GormRepo
	Events Publisher
}

func (s *BannerService) List(ctx context.Context) ([]models.Banner, error) {
	return s.Repo.ListBanners(ctx)
}

// Add stores an inactive banner.
func (s *BannerService) Add(ctx context.Context, req transport.BannerRequest) (*models.Banner, error) {
	title := strings.TrimSpace(req.Title)
	image := strings.TrimSpace(req.ImageURL)
	if title == "" || image == "" {
		return nil, fmt.Errorf("title and image_url are required: %w", ErrValidation)
	}

	return s.Repo.CreateBanner(ctx, &models.Banner{
		Title:      title,
		Subtitle:   req.Subtitle,
		Details:    req.Details,
		ButtonText: req.ButtonText,
		ButtonLink: req.ButtonLink,
		ImageURL:   image,
	})
}

func (s *BannerService) Activate(ctx context.Context, id uint) error {
	if err := s.Repo.ActivateBanner(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("banner %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("activate banner: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicBannerEvents, productKey(id), map[string]any{
		"type":     "banner_activated",
		"bannerID": id,
	})
	return nil
}
