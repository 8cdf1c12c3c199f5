package customers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

func TestCustomerFromDraftDefaultsToIndividual(t *testing.T) {
	c, err := customerFromDraft(CustomerDraft{Name: "王小姐"})
	require.NoError(t, err)
	assert.Equal(t, CustomerIndividual, c.Type)
}

func TestCustomerFromDraftAcceptsKnownType(t *testing.T) {
	gallery := "GALLERY"
	c, err := customerFromDraft(CustomerDraft{Name: "白盒画廊", Type: &gallery})
	require.NoError(t, err)
	assert.Equal(t, CustomerGallery, c.Type)
}

func TestCustomerFromDraftRejectsUnknownType(t *testing.T) {
	bogus := "WHOLESALER"
	_, err := customerFromDraft(CustomerDraft{Name: "x", Type: &bogus})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCustomerTypeValid(t *testing.T) {
	assert.True(t, CustomerIndividual.Valid())
	assert.True(t, CustomerCommercialSpace.Valid())
	assert.True(t, CustomerGallery.Valid())
	assert.False(t, CustomerType("WHOLESALER").Valid())
}
