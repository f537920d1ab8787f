package service

import (
	"context"
	"fmt"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
)

// ExportService assembles a flat export of every booking with its room and guest.
type ExportService struct {
	bookings repo.BookingRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(bookings repo.BookingRepo) *ExportService {
	return &ExportService{bookings: bookings}
}

// Export returns one row per booking, newest first.
func (s *ExportService) Export(ctx context.Context) ([]domain.BookingExportRow, error) {
	rows, err := s.bookings.ListExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if rows == nil {
		rows = []domain.BookingExportRow{}
	}
	return rows, nil
}
