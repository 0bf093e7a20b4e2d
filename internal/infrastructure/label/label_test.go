package label

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackingNumber(t *testing.T) {
	assert.Equal(t, "1Z000420392", TrackingNumber("ORD-00042"))

	// Numbers without the standard prefix pass through untouched.
	assert.Equal(t, "1ZWAVE-10010392", TrackingNumber("WAVE-1001"))
}

func TestShippingLabelContainsDestinationAndTracking(t *testing.T) {
	out := string(ShippingLabel("ORD-00042", ShipTo{
		Name:    "Jane Smith",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62701",
	}))

	assert.True(t, strings.HasPrefix(out, "^XA"))
	assert.True(t, strings.HasSuffix(out, "^XZ"))
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "Springfield, IL 62701")
	assert.Contains(t, out, "TRK#: 1Z000420392")
}

func TestPackingSlipListsLines(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	out := string(PackingSlip("ORD-00042", created, ShipTo{Name: "Jane Smith"}, []SlipLine{
		{SKU: "WIDGET-1", ItemName: "Widget", Ordered: 3, Shipped: 3},
		{SKU: "GADGET-9", ItemName: "Gadget", Ordered: 2, Shipped: 1},
	}))

	assert.Contains(t, out, "Order #: ORD-00042")
	assert.Contains(t, out, "Date: 2026-03-14")
	assert.Contains(t, out, "WIDGET-1")
	assert.Contains(t, out, "GADGET-9")
	assert.Contains(t, out, "Jane Smith")
}

func TestPackingSlipTruncatesLongItemNames(t *testing.T) {
	long := strings.Repeat("x", 40)
	out := string(PackingSlip("ORD-00001", time.Now(), ShipTo{}, []SlipLine{
		{SKU: "SKU-1", ItemName: long, Ordered: 1, Shipped: 1},
	}))

	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", 30))
}

func TestPurchaseOrderDoc(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	out := string(PurchaseOrderDoc("PO-00007", "Global Supplies Inc.", "ORDERED", created, []POLine{
		{SKU: "WIDGET-1", Qty: 50, Received: 20},
	}))

	assert.Contains(t, out, "PURCHASE ORDER: PO-00007")
	assert.Contains(t, out, "Vendor: Global Supplies Inc.")
	assert.Contains(t, out, "Status: ORDERED")
	assert.Contains(t, out, "WIDGET-1")
}

func TestBinLabelEncodesLocationBarcode(t *testing.T) {
	out := string(BinLabel("A", "A-01-01", "PICK"))

	assert.Contains(t, out, "LOC: A")
	assert.Contains(t, out, "A-01-01")
	assert.Contains(t, out, "Type: PICK")
}

func TestItemLabelTruncatesName(t *testing.T) {
	long := strings.Repeat("n", 30)
	out := string(ItemLabel(long, "SKU-1", "A-01-01"))

	assert.NotContains(t, out, long)
	assert.Contains(t, out, "SKU: SKU-1")
}
