package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/repository"
)

func newTestTableService() *TableService {
	return NewTableService(repository.NewInMemoryTableRepository("http://localhost:3000"))
}

func TestTableService_Resolve(t *testing.T) {
	svc := newTestTableService()

	tests := []struct {
		name       string
		identifier string
		wantErr    error
	}{
		{name: "valid table", identifier: "T01"},
		{name: "last seeded table", identifier: "T10"},
		{name: "unknown table", identifier: "T99", wantErr: apperr.ErrNotFound},
		{name: "lowercase rejected", identifier: "t01", wantErr: apperr.ErrInvalidIdentifier},
		{name: "missing prefix", identifier: "01", wantErr: apperr.ErrInvalidIdentifier},
		{name: "too many digits", identifier: "T001", wantErr: apperr.ErrInvalidIdentifier},
		{name: "empty identifier", identifier: "", wantErr: apperr.ErrInvalidIdentifier},
		{name: "free text", identifier: "window seat", wantErr: apperr.ErrInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := svc.Resolve(context.Background(), tt.identifier)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
				}
				if tc.Resolved() {
					t.Error("Resolve() returned a resolved context on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !tc.Resolved() {
				t.Fatal("Resolve() context not resolved")
			}
			if tc.Table.Number != tt.identifier {
				t.Errorf("Resolve() table = %s, want %s", tc.Table.Number, tt.identifier)
			}
		})
	}
}

func TestDecodeQRPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			payload: "http://localhost:3000/menu?table=T03",
			want:    "T03",
		},
		{
			name:    "https payload",
			payload: "https://order.example.com/menu?table=T07",
			want:    "T07",
		},
		{
			name:    "missing table parameter",
			payload: "http://localhost:3000/menu",
			wantErr: true,
		},
		{
			name:    "not a URL",
			payload: "just some text",
			wantErr: true,
		},
		{
			name:    "relative path",
			payload: "/menu?table=T03",
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeQRPayload(tt.payload)

			if tt.wantErr {
				if !errors.Is(err, apperr.ErrDecodeFailed) {
					t.Errorf("DecodeQRPayload() error = %v, want %v", err, apperr.ErrDecodeFailed)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeQRPayload() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeQRPayload() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTableService_ResolveQRPayload(t *testing.T) {
	svc := newTestTableService()

	tc, err := svc.ResolveQRPayload(context.Background(), "http://localhost:3000/menu?table=T02")
	if err != nil {
		t.Fatalf("ResolveQRPayload() error = %v", err)
	}
	if tc.Table.Number != "T02" {
		t.Errorf("ResolveQRPayload() table = %s, want T02", tc.Table.Number)
	}

	// A decodable payload naming a missing table fails resolution, not decoding.
	_, err = svc.ResolveQRPayload(context.Background(), "http://localhost:3000/menu?table=T99")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ResolveQRPayload() error = %v, want %v", err, apperr.ErrNotFound)
	}

	_, err = svc.ResolveQRPayload(context.Background(), "garbage")
	if !errors.Is(err, apperr.ErrDecodeFailed) {
		t.Errorf("ResolveQRPayload() error = %v, want %v", err, apperr.ErrDecodeFailed)
	}
}

func TestTableService_SetTableStatus(t *testing.T) {
	svc := newTestTableService()
	ctx := context.Background()

	if err := svc.SetTableStatus(ctx, "T01", models.TableOccupied); err != nil {
		t.Fatalf("SetTableStatus() error = %v", err)
	}

	tc, err := svc.Resolve(ctx, "T01")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if tc.Table.Status != models.TableOccupied {
		t.Errorf("table status = %s, want %s", tc.Table.Status, models.TableOccupied)
	}

	available, err := svc.AvailableTables(ctx)
	if err != nil {
		t.Fatalf("AvailableTables() error = %v", err)
	}
	for _, table := range available {
		if table.Number == "T01" {
			t.Error("AvailableTables() still lists the occupied table")
		}
	}

	if err := svc.SetTableStatus(ctx, "T99", models.TableOccupied); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("SetTableStatus() error = %v, want %v", err, apperr.ErrNotFound)
	}
}
