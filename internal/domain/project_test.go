package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShortID_Valid(t *testing.T) {
	cases := []string{"BR01", "TOWER24", "ABC1234", "ABCDEF01", "XY99"}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.NoError(t, p.ValidateShortID(), "should accept %q", id)
	}
}

func TestValidateShortID_Empty(t *testing.T) {
	p := &Project{ShortID: ""}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateShortID_Lowercase(t *testing.T) {
	p := &Project{ShortID: "br01"}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestValidateShortID_TooShort(t *testing.T) {
	p := &Project{ShortID: "B1"}
	require.Error(t, p.ValidateShortID())
}

func TestValidateShortID_NoDigits(t *testing.T) {
	p := &Project{ShortID: "BRIDGE"}
	require.Error(t, p.ValidateShortID())
}

func TestDisplayID_WithShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: "BR01"}
	assert.Equal(t, "BR01", p.DisplayID())
}

func TestDisplayID_WithoutShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: ""}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDisplayID_ShortUUID(t *testing.T) {
	p := &Project{ID: "abc", ShortID: ""}
	assert.Equal(t, "abc", p.DisplayID())
}
