package suppliers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

func TestSupplierFromDraftDefaultsToActive(t *testing.T) {
	s, err := supplierFromDraft(SupplierDraft{Name: "巴黎旧货市场"})
	require.NoError(t, err)
	assert.Equal(t, SupplierActive, s.Status)
}

func TestSupplierFromDraftAcceptsKnownStatus(t *testing.T) {
	paused := "PAUSED"
	s, err := supplierFromDraft(SupplierDraft{Name: "里昂古董商", Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, SupplierPaused, s.Status)
}

func TestSupplierFromDraftRejectsUnknownStatus(t *testing.T) {
	bogus := "RETIRED"
	_, err := supplierFromDraft(SupplierDraft{Name: "x", Status: &bogus})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestSupplierStatusValid(t *testing.T) {
	assert.True(t, SupplierActive.Valid())
	assert.True(t, SupplierInactive.Valid())
	assert.True(t, SupplierPaused.Valid())
	assert.False(t, SupplierStatus("RETIRED").Valid())
}
