package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Products []ProductEntry `yaml:"products"`
	Banner   BannerEntry    `yaml:"banner"`
}

type ProductEntry struct {
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Price       float64  `yaml:"price"`
	Description string   `yaml:"description"`
	ImageURL    string   `yaml:"image_url"`
	Thumbs      []string `yaml:"thumbs"`
	Featured    bool     `yaml:"featured"`
	NewArrival  bool     `yaml:"new_arrival"`
}

type BannerEntry struct {
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	Details    string `yaml:"details"`
	ButtonText string `yaml:"button_text"`
	ButtonLink string `yaml:"button_link"`
	ImageURL   string `yaml:"image_url"`
}

type Admin struct {
	Email    string
	Username string
	Password string
}

func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &c, nil
}

func (p ProductEntry) model() *models.Product {
	m := &models.Product{
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        p.Price,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		IsFeatured:   p.Featured,
		IsNewArrival: p.NewArrival,
	}
	thumbs := []**string{&m.Thumb1, &m.Thumb2, &m.Thumb3, &m.Thumb4}
	for i, t := range p.Thumbs {
		if i >= len(thumbs) {
			break
		}
		v := t
		*thumbs[i] = &v
	}
	return m
}

// Run fills an empty catalog, installs the default banner when no banner
// exists and makes sure the configured admin account is present. All of it
// commits in one transaction, and running it again changes nothing.
func Run(ctx context.Context, r *repo.GormRepo, admin Admin) error {
	l := logging.FromContext(ctx).With("component", "seed")

	catalog, err := LoadCatalog()
	if err != nil {
		return err
	}

	var adminUser *models.User
	if admin.Email != "" {
		pwHash, err := pkg_hash.HashPassword(admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		username := admin.Username
		if username == "" {
			username = "admin"
		}
		adminUser = &models.User{Username: username, Email: admin.Email, PasswordHash: pwHash}
	}

	var res result
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = apply(ctx, &repo.GormRepo{DB: tx}, catalog, adminUser)
		return err
	})
	if err != nil {
		return err
	}

	if res.products > 0 {
		l.Info("seed_products_created", "count", res.products)
	}
	if res.bannerID != 0 {
		l.Info("seed_banner_created", "banner_id", res.bannerID)
	}
	if adminUser != nil {
		l.Info("seed_admin_ready", "email", adminUser.Email)
	}
	return nil
}

type result struct {
	products int
	bannerID uint
}

func apply(ctx context.Context, r *repo.GormRepo, catalog *Catalog, adminUser *models.User) (result, error) {
	var res result

	n, err := r.CountProducts(ctx)
	if err != nil {
		return res, fmt.Errorf("count products: %w", err)
	}
	if n == 0 {
		for _, p := range catalog.Products {
			if _, err := r.CreateProduct(ctx, p.model()); err != nil {
				return res, err
			}
		}
		res.products = len(catalog.Products)
	}

	n, err = r.CountBanners(ctx)
	if err != nil {
		return res, fmt.Errorf("count banners: %w", err)
	}
	if n == 0 {
		b := catalog.Banner
		created, err := r.CreateBanner(ctx, &models.Banner{
			Title:      b.Title,
			Subtitle:   b.Subtitle,
			Details:    b.Details,
			ButtonText: b.ButtonText,
			ButtonLink: b.ButtonLink,
			ImageURL:   b.ImageURL,
		})
		if err != nil {
			return res, err
		}
		if err := r.ActivateBanner(ctx, created.ID); err != nil {
			return res, fmt.Errorf("activate seed banner: %w", err)
		}
		res.bannerID = created.ID
	}

	if adminUser != nil {
		if err := r.EnsureAdmin(ctx, adminUser); err != nil {
			return res, fmt.Errorf("ensure admin: %w", err)
		}
	}
	return res, nil
}
