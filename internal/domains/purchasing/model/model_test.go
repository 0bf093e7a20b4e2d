package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOLinesDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		lines   POLines
		current string
		want    string
	}{
		{
			name:    "untouched order keeps current status",
			lines:   POLines{{SKU: "WIDGET-1", Qty: 10}},
			current: StatusDraft,
			want:    StatusDraft,
		},
		{
			name:    "partial receipt moves to ordered",
			lines:   POLines{{SKU: "WIDGET-1", Qty: 10, Received: 3}},
			current: StatusDraft,
			want:    StatusOrdered,
		},
		{
			name: "full receipt across lines",
			lines: POLines{
				{SKU: "WIDGET-1", Qty: 10, Received: 10},
				{SKU: "WIDGET-2", Qty: 5, Received: 5},
			},
			current: StatusOrdered,
			want:    StatusReceived,
		},
		{
			name:    "over-receipt counts as received",
			lines:   POLines{{SKU: "WIDGET-1", Qty: 10, Received: 12}},
			current: StatusOrdered,
			want:    StatusReceived,
		},
		{
			name: "one short line keeps the order open",
			lines: POLines{
				{SKU: "WIDGET-1", Qty: 10, Received: 10},
				{SKU: "WIDGET-2", Qty: 5, Received: 4},
			},
			current: StatusOrdered,
			want:    StatusOrdered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lines.DeriveStatus(tt.current))
		})
	}
}

func TestPOLinesTotals(t *testing.T) {
	lines := POLines{
		{SKU: "WIDGET-1", Qty: 10, Received: 3},
		{SKU: "WIDGET-2", Qty: 5, Received: 5},
	}

	assert.Equal(t, 15, lines.TotalOrdered())
	assert.Equal(t, 8, lines.TotalReceived())
}

func TestPOLinesScanRoundTrip(t *testing.T) {
	lines := POLines{{SKU: "WIDGET-1", Qty: 10, Received: 2}}

	value, err := lines.Value()
	require.NoError(t, err)

	var decoded POLines
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, lines, decoded)
}

func TestPOLinesScanNil(t *testing.T) {
	var decoded POLines
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestPOLinesValueNilEncodesEmptyArray(t *testing.T) {
	var lines POLines

	value, err := lines.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)))
}

func TestCreatePORequestValidation(t *testing.T) {
	assert.Error(t, CreatePORequest{}.Validate())
	assert.Error(t, CreatePOLine{SKU: "WIDGET-1", Qty: 0}.Validate())
	assert.NoError(t, CreatePOLine{SKU: "WIDGET-1", Qty: 1}.Validate())
}

func TestCreateSupplierRequestValidation(t *testing.T) {
	assert.Error(t, CreateSupplierRequest{Name: "Acme"}.Validate())
	assert.Error(t, CreateSupplierRequest{Name: "Acme", ContactEmail: "not-an-email"}.Validate())
	assert.NoError(t, CreateSupplierRequest{Name: "Acme", ContactEmail: "po@acme.test"}.Validate())
}
