package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitCountRequestValidation(t *testing.T) {
	zero := 0
	negative := -1
	five := 5

	assert.Error(t, SubmitCountRequest{}.Validate(), "missing count is rejected")
	assert.Error(t, SubmitCountRequest{CountedQty: &negative}.Validate())

	// Counting an empty bin is a legitimate result.
	assert.NoError(t, SubmitCountRequest{CountedQty: &zero}.Validate())
	assert.NoError(t, SubmitCountRequest{CountedQty: &five}.Validate())
}

func TestCreateLocationCountRequestValidation(t *testing.T) {
	assert.Error(t, CreateLocationCountRequest{}.Validate())
	assert.NoError(t, CreateLocationCountRequest{LocationCode: "A-01-01"}.Validate())
}

func TestReconcileCount(t *testing.T) {
	tests := []struct {
		name                       string
		live, reserved, counted    int
		wantVariance, wantReserved int
	}{
		{"match", 10, 4, 10, 0, 4},
		{"overage", 10, 4, 12, 2, 4},
		{"shrinkage keeps reservation", 10, 4, 8, -2, 4},
		{"shrinkage clamps reservation", 10, 8, 5, -5, 5},
		{"empty bin clears reservation", 10, 4, 0, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variance, reserved := ReconcileCount(tt.live, tt.reserved, tt.counted)
			assert.Equal(t, tt.wantVariance, variance)
			assert.Equal(t, tt.wantReserved, reserved)
		})
	}
}
