// Package handler: export.go implements GET /bookings/export.
// Returns every booking with its room and guest as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"booking_id", "confirmation_code", "check_in_date", "check_out_date",
	"num_of_adults", "num_of_children", "total_num_of_guest",
	"room_id", "room_type", "guest_id", "guest_name", "guest_email",
}

// ExportRow is the JSON representation of one exported booking.
type ExportRow struct {
	BookingID        int64  `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	NumOfAdults      int    `json:"num_of_adults"`
	NumOfChildren    int    `json:"num_of_children"`
	TotalNumOfGuest  int    `json:"total_num_of_guest"`
	RoomID           int64  `json:"room_id"`
	RoomType         string `json:"room_type"`
	GuestID          int64  `json:"guest_id"`
	GuestName        string `json:"guest_name"`
	GuestEmail       string `json:"guest_email"`
}

// ExportBookings handles GET /bookings/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportBookings(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		badRequest(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.BookingExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func exportRowToResponse(r domain.BookingExportRow) ExportRow {
	return ExportRow{
		BookingID:        r.BookingID,
		ConfirmationCode: r.ConfirmationCode,
		CheckInDate:      r.CheckIn,
		CheckOutDate:     r.CheckOut,
		NumOfAdults:      r.Adults,
		NumOfChildren:    r.Children,
		TotalNumOfGuest:  r.TotalGuests,
		RoomID:           r.RoomID,
		RoomType:         r.RoomType,
		GuestID:          r.GuestID,
		GuestName:        r.GuestName,
		GuestEmail:       r.GuestEmail,
	}
}

// exportRowToCSVRecord encodes one row as a flat string slice in csvHeaders order.
func exportRowToCSVRecord(r domain.BookingExportRow) []string {
	return []string{
		strconv.FormatInt(r.BookingID, 10),
		r.ConfirmationCode,
		r.CheckIn,
		r.CheckOut,
		strconv.Itoa(r.Adults),
		strconv.Itoa(r.Children),
		strconv.Itoa(r.TotalGuests),
		strconv.FormatInt(r.RoomID, 10),
		r.RoomType,
		strconv.FormatInt(r.GuestID, 10),
		r.GuestName,
		r.GuestEmail,
	}
}
