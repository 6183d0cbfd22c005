package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/repository"
)

// Table numbers look like T01. Anything else is rejected before the
// repository is consulted.
var tableNumberPattern = regexp.MustCompile(`^T[0-9]{2}$`)

// TableService resolves raw identifiers and QR payloads to table records
type TableService struct {
	repo repository.TableRepository
}

// NewTableService creates a new table service
func NewTableService(repo repository.TableRepository) *TableService {
	return &TableService{repo: repo}
}

// ListTables returns every table
func (s *TableService) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.repo.GetAll(ctx)
}

// AvailableTables returns the tables that can seat new guests
func (s *TableService) AvailableTables(ctx context.Context) ([]models.Table, error) {
	return s.repo.GetAvailable(ctx)
}

// Resolve turns a raw identifier (scanned or typed) into a confirmed table
// context. A malformed identifier and a missing table are distinct
// failures: the first means the input is wrong, the second that no such
// table exists.
func (s *TableService) Resolve(ctx context.Context, identifier string) (models.TableContext, error) {
	tc := models.TableContext{Identifier: identifier}

	if !tableNumberPattern.MatchString(identifier) {
		return tc, fmt.Errorf("%w: %q", apperr.ErrInvalidIdentifier, identifier)
	}

	table, err := s.repo.GetByNumber(ctx, identifier)
	if err != nil {
		if err == repository.ErrTableNotFound {
			return tc, fmt.Errorf("%w: table %s", apperr.ErrNotFound, identifier)
		}
		return tc, fmt.Errorf("%w: table lookup: %v", apperr.ErrUnavailable, err)
	}

	tc.Table = table
	return tc, nil
}

// DecodeQRPayload extracts the table identifier from a scanned QR payload.
// The payload must be a well-formed URL carrying a `table` query parameter;
// anything else is a decode failure, not a resolver failure, so the UI can
// prompt a rescan instead of reporting an unknown table.
func DecodeQRPayload(payload string) (string, error) {
	u, err := url.Parse(payload)
	if err != nil || !u.IsAbs() {
		return "", fmt.Errorf("%w: not a table URL", apperr.ErrDecodeFailed)
	}

	identifier := u.Query().Get("table")
	if identifier == "" {
		return "", fmt.Errorf("%w: missing table parameter", apperr.ErrDecodeFailed)
	}
	return identifier, nil
}

// ResolveQRPayload decodes a scanned payload and resolves the table it names
func (s *TableService) ResolveQRPayload(ctx context.Context, payload string) (models.TableContext, error) {
	identifier, err := DecodeQRPayload(payload)
	if err != nil {
		return models.TableContext{}, err
	}
	return s.Resolve(ctx, identifier)
}

// SetTableStatus updates a table's occupancy status
func (s *TableService) SetTableStatus(ctx context.Context, number string, status models.TableStatus) error {
	if err := s.repo.UpdateStatus(ctx, number, status); err != nil {
		if err == repository.ErrTableNotFound {
			return fmt.Errorf("%w: table %s", apperr.ErrNotFound, number)
		}
		return err
	}
	return nil
}
