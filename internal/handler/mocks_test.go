package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-booking/internal/auth"
	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/handler"
)

// ---- mock servicers --------------------------------------------------------
// Each method is a function field: set only the ones your test needs.

type mockRoomServicer struct {
	add                     func(ctx context.Context, room domain.Room, photo *domain.Photo) (domain.Room, error)
	list                    func(ctx context.Context) ([]domain.Room, error)
	types                   func(ctx context.Context) ([]string, error)
	getByID                 func(ctx context.Context, id int64) (domain.Room, error)
	update                  func(ctx context.Context, id int64, patch domain.RoomPatch, photo *domain.Photo) (domain.Room, error)
	delete                  func(ctx context.Context, id int64) error
	availableByDatesAndType func(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error)
	allAvailable            func(ctx context.Context) ([]domain.Room, error)
}

func (m *mockRoomServicer) Add(ctx context.Context, room domain.Room, photo *domain.Photo) (domain.Room, error) {
	return m.add(ctx, room, photo)
}
func (m *mockRoomServicer) List(ctx context.Context) ([]domain.Room, error) { return m.list(ctx) }
func (m *mockRoomServicer) Types(ctx context.Context) ([]string, error)     { return m.types(ctx) }
func (m *mockRoomServicer) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	return m.getByID(ctx, id)
}
func (m *mockRoomServicer) Update(ctx context.Context, id int64, patch domain.RoomPatch, photo *domain.Photo) (domain.Room, error) {
	return m.update(ctx, id, patch, photo)
}
func (m *mockRoomServicer) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }
func (m *mockRoomServicer) AvailableByDatesAndType(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error) {
	return m.availableByDatesAndType(ctx, stay, roomType)
}
func (m *mockRoomServicer) AllAvailable(ctx context.Context) ([]domain.Room, error) {
	return m.allAvailable(ctx)
}

var _ handler.RoomServicer = (*mockRoomServicer)(nil)

type mockBookingServicer struct {
	create                func(ctx context.Context, roomID, guestID int64, proposed domain.Booking) (domain.Booking, error)
	getByConfirmationCode func(ctx context.Context, code string) (domain.Booking, error)
	list                  func(ctx context.Context) ([]domain.Booking, error)
	cancel                func(ctx context.Context, id int64) error
}

func (m *mockBookingServicer) Create(ctx context.Context, roomID, guestID int64, proposed domain.Booking) (domain.Booking, error) {
	return m.create(ctx, roomID, guestID, proposed)
}
func (m *mockBookingServicer) GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	return m.getByConfirmationCode(ctx, code)
}
func (m *mockBookingServicer) List(ctx context.Context) ([]domain.Booking, error) { return m.list(ctx) }
func (m *mockBookingServicer) Cancel(ctx context.Context, id int64) error         { return m.cancel(ctx, id) }

var _ handler.BookingServicer = (*mockBookingServicer)(nil)

type mockUserServicer struct {
	register   func(ctx context.Context, reg domain.Registration) (domain.User, error)
	createUser func(ctx context.Context, reg domain.Registration) (domain.User, error)
	login      func(ctx context.Context, email, password string) (domain.Session, error)
	list       func(ctx context.Context) ([]domain.User, error)
	getByID    func(ctx context.Context, id int64) (domain.User, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockUserServicer) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	return m.register(ctx, reg)
}
func (m *mockUserServicer) CreateUser(ctx context.Context, reg domain.Registration) (domain.User, error) {
	return m.createUser(ctx, reg)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) { return m.list(ctx) }
func (m *mockUserServicer) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) Delete(ctx context.Context, id int64) error { return m.delete(ctx, id) }

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.BookingExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.BookingExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- auth ------------------------------------------------------------------

const (
	adminToken = "admin-token"
	userToken  = "user-token"
	userID     = int64(7)
)

type stubTokens struct{}

func (stubTokens) Parse(token string) (auth.Principal, error) {
	switch token {
	case adminToken:
		return auth.Principal{UserID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}, nil
	case userToken:
		return auth.Principal{UserID: userID, Email: "guest@example.com", Role: domain.RoleUser}, nil
	}
	return auth.Principal{}, domain.ErrUnauthorized
}

// ---- helpers ---------------------------------------------------------------

type deps struct {
	rooms    handler.RoomServicer
	bookings handler.BookingServicer
	users    handler.UserServicer
	export   handler.ExportServicer
}

// newRouter wires a Server over the given mocks behind the real router.
func newRouter(d deps) http.Handler {
	srv := handler.NewServer(d.rooms, d.bookings, d.users, d.export, nil)
	return srv.Routes(stubTokens{})
}

// do sends a request through h. token may be empty for anonymous requests.
func do(h http.Handler, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// multipartBody builds a multipart form. A non-empty photo adds a "photo" file part.
func multipartBody(t *testing.T, fields map[string]string, photo string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != "" {
		fw, err := mw.CreateFormFile("photo", "room.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte(photo))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

var errDB = errors.New("db down")
