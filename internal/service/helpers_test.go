package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/pkg/db"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		t, _ := e.Event["type"].(string)
		out = append(out, t)
	}
	return out
}

type testEnv struct {
	Repo     *repo.GormRepo
	Sessions *session.MemoryStore
	Events   *recordingPublisher
	Auth     *AuthService
	Cart     *CartService
	Catalog  *CatalogService
	Banners  *BannerService
	Contacts *ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.OpenMemory(ctx)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(ctx, gdb))

	r := &repo.GormRepo{DB: gdb}
	store := session.NewMemoryStore()
	events := &recordingPublisher{}

	return &testEnv{
		Repo:     r,
		Sessions: store,
		Events:   events,
		Auth:     &AuthService{Repo: r, Sessions: store, TTL: time.Hour, Events: events},
		Cart:     &CartService{Repo: r, Sessions: store, Events: events},
		Catalog:  &CatalogService{Repo: r, Search: &search.Database{Repo: r}, Events: events},
		Banners:  &BannerService{Repo: r, Events: events},
		Contacts: &ContactService{Repo: r, Events: events},
	}
}

func (env *testEnv) createUser(t *testing.T, username, email, password string, isAdmin bool) *models.User {
	t.Helper()

	h, err := pkg_hash.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Username: username, Email: email, PasswordHash: h, IsAdmin: isAdmin}
	require.NoError(t, env.Repo.DB.Create(u).Error)
	return u
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64, featured, newArrival bool) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:         name,
		Brand:        "ZaZa",
		Price:        price,
		ImageURL:     "img/products/" + name + ".jpeg",
		IsFeatured:   featured,
		IsNewArrival: newArrival,
	}
	require.NoError(t, env.Repo.DB.Create(p).Error)
	return p
}

func (env *testEnv) login(t *testing.T, email, password string) *session.Session {
	t.Helper()

	sess, err := env.Auth.Authenticate(context.Background(), email, password, "")
	require.NoError(t, err)
	return sess
}
