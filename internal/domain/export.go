package domain

// BookingExportRow is a single row in the booking export.
// It is a flat, denormalized view: one row per booking, with the room type and
// guest contact repeated on every row.
type BookingExportRow struct {
	BookingID        int64
	ConfirmationCode string
	CheckIn          string // "2006-01-02" formatted date
	CheckOut         string // "2006-01-02" formatted date
	Adults           int
	Children         int
	TotalGuests      int

	RoomID   int64
	RoomType string

	GuestID    int64
	GuestName  string
	GuestEmail string
}
