package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/pkg/db"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const (
	testSecret         = "test-session-secret"
	testOperatorSecret = "op-secret"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Repo     *repo.GormRepo
	Sessions *session.MemoryStore
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
	events := service.NopPublisher{}
	authSvc := &service.AuthService{Repo: r, Sessions: store, TTL: time.Hour, Events: events}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc, Secret: []byte(testSecret)},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r, Sessions: store, Events: events}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Search: &search.Database{Repo: r}, Events: events}},
		BannerHandler:  &BannerHTTP{Svc: &service.BannerService{Repo: r, Events: events}},
		ContactHandler: &ContactHTTP{Svc: &service.ContactService{Repo: r, Events: events}},
		Sessions:       &SessionMiddleware{Auth: authSvc, Secret: []byte(testSecret)},
		OperatorSecret: testOperatorSecret,
	})

	return &testEnv{T: t, E: e, Repo: r, Sessions: store}
}

func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createUser(username, email, password string, isAdmin bool) *models.User {
	env.T.Helper()

	h, err := pkg_hash.HashPassword(password)
	require.NoError(env.T, err)
	u := &models.User{Username: username, Email: email, PasswordHash: h, IsAdmin: isAdmin}
	require.NoError(env.T, env.Repo.DB.Create(u).Error)
	return u
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()

	p := &models.Product{Name: name, Brand: "ZaZa", Price: price, ImageURL: "img/products/f1.jpeg", IsFeatured: true}
	require.NoError(env.T, env.Repo.DB.Create(p).Error)
	return p
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			return ck
		}
	}
	return nil
}

func (env *testEnv) login(email, password string) *http.Cookie {
	env.T.Helper()

	rec := env.doJSONRequest(http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())
	ck := sessionCookie(rec)
	require.NotNil(env.T, ck)
	require.NotEmpty(env.T, ck.Value)
	return &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"}
}
