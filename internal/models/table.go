package models

import "time"

// TableStatus represents the occupancy state of a restaurant table
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableCleaning  TableStatus = "CLEANING"
)

// Table represents a physical table with its QR code URL
type Table struct {
	ID        string      `json:"id"`
	Number    string      `json:"tableNumber"`
	Capacity  int         `json:"capacity"`
	QRCode    string      `json:"qrCode"`
	Status    TableStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TableContext carries the table a cart or order is bound to. The raw
// identifier is known as soon as it is scanned or typed; Table stays nil
// until the resolver confirms it.
type TableContext struct {
	Identifier string `json:"identifier"`
	Table      *Table `json:"table,omitempty"`
}

// Resolved reports whether the identifier has been confirmed against a
// real table record.
func (tc TableContext) Resolved() bool {
	return tc.Table != nil
}
