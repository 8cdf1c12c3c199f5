package products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

type mockRepository struct {
	products map[int64]*Product
	images   map[int64][]Image
	nextID   int64

	deleteError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: make(map[int64]*Product),
		images:   make(map[int64][]Image),
		nextID:   1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	copied.Images = append([]Image(nil), m.images[id]...)
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Product, error) {
	result := []Product{}
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockRepository) Create(ctx context.Context, p Product) (int64, error) {
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return 0, httpx.ErrConflict
		}
	}
	id := m.nextID
	m.nextID++
	p.ID = id
	m.products[id] = &p
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, p Product) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	p.ID = id
	m.products[id] = &p
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepository) InsertImage(ctx context.Context, img Image) error {
	m.images[img.ProductID] = append(m.images[img.ProductID], img)
	return nil
}

func (m *mockRepository) DeleteImages(ctx context.Context, productID int64) error {
	delete(m.images, productID)
	return nil
}

func (m *mockRepository) Slugs(ctx context.Context, excludeID int64) (map[string]bool, error) {
	slugs := make(map[string]bool)
	for id, p := range m.products {
		if id != excludeID {
			slugs[p.Slug] = true
		}
	}
	return slugs, nil
}

func TestCreateDerivesSlugFromEnglishName(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m)

	p, err := svc.Create(context.Background(), ProductDraft{
		NameZh:   "标准椅",
		NameEn:   "Standard Chair",
		Category: "椅子",
	})
	require.NoError(t, err)
	assert.Equal(t, "standard-chair", p.Slug)
}

func TestCreateDisambiguatesSlug(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m)

	_, err := svc.Create(context.Background(), ProductDraft{NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子"})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), ProductDraft{NameZh: "标准椅二号", NameEn: "Standard Chair", Category: "椅子"})
	require.NoError(t, err)
	assert.Equal(t, "standard-chair-2", second.Slug)
}

func TestCreateRejectsMissingNames(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), ProductDraft{NameEn: "Chair", Category: "椅子"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestUpdateReplacesImagesWhenGiven(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m)

	created, err := svc.Create(context.Background(), ProductDraft{
		NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子",
		Images: []ImageDraft{{URL: "https://cdn.example/a.jpg"}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, ProductDraft{
		NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子",
		Images: []ImageDraft{
			{URL: "https://cdn.example/b.jpg", IsPrimary: true},
			{URL: "https://cdn.example/c.jpg", SortOrder: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "https://cdn.example/b.jpg", updated.Images[0].URL)
}

func TestUpdateNilImagesKeepsExisting(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m)

	created, err := svc.Create(context.Background(), ProductDraft{
		NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子",
		Images: []ImageDraft{{URL: "https://cdn.example/a.jpg"}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, ProductDraft{
		NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子",
	})
	require.NoError(t, err)
	assert.Len(t, updated.Images, 1)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m)

	created, err := svc.Create(context.Background(), ProductDraft{NameZh: "标准椅", NameEn: "Standard Chair", Category: "椅子"})
	require.NoError(t, err)

	m.deleteError = httpx.ErrStillReferenced
	_, err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrStillReferenced))
}
