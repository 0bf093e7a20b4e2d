package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesRoundTrip(t *testing.T) {
	attrs := Attributes{"weight_kg": 1.5, "hazmat": false}

	value, err := attrs.Value()
	require.NoError(t, err)

	var decoded Attributes
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, 1.5, decoded["weight_kg"])
	assert.Equal(t, false, decoded["hazmat"])
}

func TestAttributesValueNilEncodesEmptyObject(t *testing.T) {
	var attrs Attributes

	value, err := attrs.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(value.([]byte)))
}

func TestAttributesScanHandlesNilAndString(t *testing.T) {
	var attrs Attributes
	require.NoError(t, attrs.Scan(nil))
	assert.Empty(t, attrs)

	require.NoError(t, attrs.Scan(`{"color":"red"}`))
	assert.Equal(t, "red", attrs["color"])

	assert.Error(t, attrs.Scan(42))
}

func TestIsValidLocationType(t *testing.T) {
	for _, lt := range []string{LocationTypePick, LocationTypeReserve, LocationTypeDock, LocationTypeStaging} {
		assert.True(t, IsValidLocationType(lt), lt)
	}
	assert.False(t, IsValidLocationType("MEZZANINE"))
}
