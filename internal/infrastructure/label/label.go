// Package label renders warehouse labels as ZPL and packing slips as plain
// text. Output is an opaque byte payload streamed straight to a printer;
// callers never parse it.
package label

import (
	"fmt"
	"strings"
	"time"
)

// BinLabel renders a location bin label: zone, human readable code, barcode.
func BinLabel(zone, locationCode, locationType string) []byte {
	zpl := fmt.Sprintf(`^XA
^CF0,50
^FO50,50^FDLOC: %s^FS
^CF0,100
^FO50,110^FD%s^FS
^BY3,2,150
^FO50,250^BC^FD%s^FS
^CF0,30
^FO50,450^FDType: %s^FS
^XZ`, zone, locationCode, locationCode, locationType)
	return []byte(zpl)
}

// ItemLabel renders an inventory label with the SKU barcode.
func ItemLabel(itemName, sku, locationCode string) []byte {
	name := itemName
	if len(name) > 25 {
		name = name[:25]
	}
	zpl := fmt.Sprintf("^XA^FO50,50^ADN,36,20^FD%s^FS^FO50,100^ADN,18,10^FDSKU: %s^FS^FO50,130^ADN,18,10^FDLOC: %s^FS^FO50,180^BY2,2,100^BCN,100,Y,N,N^FD%s^FS^XZ",
		name, sku, locationCode, sku)
	return []byte(zpl)
}

// ShipTo is the destination block printed on shipping labels and slips.
type ShipTo struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// TrackingNumber derives the mock carrier tracking number from the order
// number. A real carrier integration would replace this.
func TrackingNumber(orderNumber string) string {
	return fmt.Sprintf("1Z%s0392", strings.ReplaceAll(orderNumber, "ORD-", ""))
}

// ShippingLabel renders a carrier-style shipping label with a tracking
// barcode. Mocked; swap for an EasyPost/Shippo call in production.
func ShippingLabel(orderNumber string, to ShipTo) []byte {
	tracking := TrackingNumber(orderNumber)
	zpl := fmt.Sprintf(`^XA
^CF0,60
^FO50,50^GB700,100,100^FS
^FO75,75^FR^GB700,100,100^FS
^FO200,75^FDNEXWMS LOGISTICS^FS
^CF0,30
^FO50,200^FDSHIP TO:^FS
^FO50,240^FD%s^FS
^FO50,280^FD%s^FS
^FO50,320^FD%s, %s %s^FS
^FO50,400^GB700,3,3^FS
^BY4,2,150
^FO100,450^BC^FD%s^FS
^CF0,20
^FO250,620^FDTRK#: %s^FS
^XZ`, to.Name, to.Address, to.City, to.State, to.Zip, tracking, tracking)
	return []byte(zpl)
}

// POLine is one line on a printed purchase order.
type POLine struct {
	SKU      string
	Qty      int
	Received int
}

// PurchaseOrderDoc renders a purchase order as printable text.
func PurchaseOrderDoc(poNumber, supplierName, status string, createdAt time.Time, lines []POLine) []byte {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("PURCHASE ORDER: %s\n", poNumber))
	b.WriteString(fmt.Sprintf("Vendor: %s\n", supplierName))
	b.WriteString(fmt.Sprintf("Date: %s\n", createdAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Status: %s\n\n", status))
	b.WriteString(fmt.Sprintf("%-20s %18s %10s\n", "SKU", "QUANTITY ORDERED", "RECEIVED"))
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("%-20s %18d %10d\n", l.SKU, l.Qty, l.Received))
	}

	return []byte(b.String())
}

// SlipLine is one order line on a packing slip.
type SlipLine struct {
	SKU      string
	ItemName string
	Ordered  int
	Shipped  int
}

// PackingSlip renders the slip as printable text.
func PackingSlip(orderNumber string, createdAt time.Time, to ShipTo, lines []SlipLine) []byte {
	var b strings.Builder

	b.WriteString("PACKING SLIP\n")
	b.WriteString(fmt.Sprintf("Order #: %s\n", orderNumber))
	b.WriteString(fmt.Sprintf("Date: %s\n", createdAt.Format("2006-01-02")))
	b.WriteString("\nNexWMS Inc.\n100 Warehouse Dr.\nNew York, NY 10001\n")
	b.WriteString("\nShip To:\n")
	b.WriteString(fmt.Sprintf("%s\n%s\n%s, %s %s\n", to.Name, to.Address, to.City, to.State, to.Zip))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-20s %-30s %8s %8s\n", "SKU", "ITEM NAME", "ORDERED", "SHIPPED"))
	b.WriteString(strings.Repeat("-", 70) + "\n")
	for _, l := range lines {
		name := l.ItemName
		if len(name) > 30 {
			name = name[:30]
		}
		b.WriteString(fmt.Sprintf("%-20s %-30s %8d %8d\n", l.SKU, name, l.Ordered, l.Shipped))
	}
	b.WriteString("\nThank you for your business!\n")

	return []byte(b.String())
}
