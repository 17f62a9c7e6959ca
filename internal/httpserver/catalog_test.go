package httpserver

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/ready", nil).Code)
}

func TestShop_HugePageIsClamped(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("tee", 100)

	rec := env.doJSONRequest(http.MethodGet, "/shop?page=9223372036854775807&size=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var shop struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page    int  `json:"page"`
			HasNext bool `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shop))
	assert.Empty(t, shop.Data)
	assert.Equal(t, math.MaxInt32/4, shop.Meta.Page)
	assert.False(t, shop.Meta.HasNext)
}

func TestPublicCatalog(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct("astronaut", 4000)
	for i := 0; i < 5; i++ {
		env.createProduct(fmt.Sprintf("p%d", i), 100)
	}

	rec := env.doJSONRequest(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var home struct {
		Banner   *models.Banner   `json:"banner"`
		Featured []models.Product `json:"featured"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	assert.Nil(t, home.Banner)
	assert.Len(t, home.Featured, 6)

	rec = env.doJSONRequest(http.MethodGet, "/shop?page=2&size=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var shop struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total   int64 `json:"total"`
			HasPrev bool  `json:"has_prev"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shop))
	assert.Len(t, shop.Data, 2)
	assert.EqualValues(t, 6, shop.Meta.Total)
	assert.True(t, shop.Meta.HasPrev)
	assert.False(t, shop.Meta.HasNext)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/product/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Product models.Product   `json:"product"`
		Related []models.Product `json:"related"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, first.ID, page.Product.ID)
	assert.Len(t, page.Related, 4)

	assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodGet, "/product/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodGet, "/product/x", nil).Code)

	rec = env.doJSONRequest(http.MethodGet, "/search?q=astro", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found.Data, 1)
	assert.Equal(t, first.ID, found.Data[0].ID)
}

func TestAdminProducts(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("boss", "boss@example.com", "pw", true)
	ck := env.login("boss@example.com", "pw")

	body := map[string]any{
		"name":      "Knit Sweater",
		"brand":     "ZaZa",
		"price":     4600,
		"image_url": "img/products/f12.jpeg",
	}
	rec := env.doJSONRequest(http.MethodPost, "/admin/products/add", body, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.IsNewArrival)
	assert.False(t, created.IsFeatured)

	body["price"] = 0
	rec = env.doJSONRequest(http.MethodPost, "/admin/products/add", body, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body["price"] = 5000
	editPath := fmt.Sprintf("/admin/products/edit/%d", created.ID)
	rec = env.doJSONRequest(http.MethodPost, editPath, body, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSONRequest(http.MethodGet, editPath, nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 5000, got.Price, 0.001)

	rec = env.doJSONRequest(http.MethodPost, "/admin/products/edit/999", body, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/admin/products", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	deletePath := fmt.Sprintf("/admin/products/delete/%d", created.ID)
	assert.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodPost, deletePath, nil, ck).Code)
	assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodPost, deletePath, nil, ck).Code)
}

func TestAdminBanners(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("boss", "boss@example.com", "pw", true)
	ck := env.login("boss@example.com", "pw")

	ids := make([]uint, 0, 2)
	for _, title := range []string{"first", "second"} {
		rec := env.doJSONRequest(http.MethodPost, "/admin/banners/add", map[string]string{
			"title":     title,
			"image_url": "img/logo/520.jpeg",
		}, ck)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var b models.Banner
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		ids = append(ids, b.ID)
	}

	rec := env.doJSONRequest(http.MethodPost, "/admin/banners/add", map[string]string{"title": "no image"}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, fmt.Sprintf("/admin/banners/activate/%d", ids[0]), nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.doJSONRequest(http.MethodPost, "/admin/banners/activate/999", nil, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/admin/banners", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var banners []models.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banners))
	require.Len(t, banners, 2)
	for _, b := range banners {
		assert.Equal(t, b.ID == ids[0], b.IsActive, b.Title)
	}

	rec = env.doJSONRequest(http.MethodGet, "/", nil)
	var home struct {
		Banner *models.Banner `json:"banner"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	require.NotNil(t, home.Banner)
	assert.Equal(t, ids[0], home.Banner.ID)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/submit-contact", map[string]string{
		"name":    "Eve",
		"email":   "eve@example.com",
		"subject": "Hi",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/submit-contact", map[string]string{"name": "Eve"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
