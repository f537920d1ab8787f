package service_test

import (
	"context"
	"io"
	"time"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
	"github.com/pkordes/hotel-booking/internal/service"
)

// Hand-written test doubles. Each method is a function field: set only the
// ones a test needs. Calling an unset one panics, which fails the test loudly.

type mockRoomRepo struct {
	create           func(ctx context.Context, room domain.Room) (domain.Room, error)
	getByID          func(ctx context.Context, id int64) (domain.Room, error)
	getByIDForUpdate func(ctx context.Context, id int64) (domain.Room, error)
	list             func(ctx context.Context) ([]domain.Room, error)
	listTypes        func(ctx context.Context) ([]string, error)
	listAvailable    func(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error)
	listUnbooked     func(ctx context.Context) ([]domain.Room, error)
	update           func(ctx context.Context, room domain.Room) (domain.Room, error)
	delete           func(ctx context.Context, id int64) error
}

func (m *mockRoomRepo) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	return m.create(ctx, room)
}
func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	return m.getByID(ctx, id)
}
func (m *mockRoomRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Room, error) {
	return m.getByIDForUpdate(ctx, id)
}
func (m *mockRoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	return m.list(ctx)
}
func (m *mockRoomRepo) ListTypes(ctx context.Context) ([]string, error) {
	return m.listTypes(ctx)
}
func (m *mockRoomRepo) ListAvailable(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error) {
	return m.listAvailable(ctx, stay, roomType)
}
func (m *mockRoomRepo) ListUnbooked(ctx context.Context) ([]domain.Room, error) {
	return m.listUnbooked(ctx)
}
func (m *mockRoomRepo) Update(ctx context.Context, room domain.Room) (domain.Room, error) {
	return m.update(ctx, room)
}
func (m *mockRoomRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.RoomRepo = (*mockRoomRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, u domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id int64) (domain.User, error)
	getByEmail    func(ctx context.Context, email string) (domain.User, error)
	existsByEmail func(ctx context.Context, email string) (bool, error)
	list          func(ctx context.Context) ([]domain.User, error)
	delete        func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmail(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockBookingRepo struct {
	create                func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID               func(ctx context.Context, id int64) (domain.Booking, error)
	getByConfirmationCode func(ctx context.Context, code string) (domain.Booking, error)
	list                  func(ctx context.Context) ([]domain.Booking, error)
	listExport            func(ctx context.Context) ([]domain.BookingExportRow, error)
	delete                func(ctx context.Context, id int64) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	return m.getByConfirmationCode(ctx, code)
}
func (m *mockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	return m.list(ctx)
}
func (m *mockBookingRepo) ListExport(ctx context.Context) ([]domain.BookingExportRow, error) {
	return m.listExport(ctx)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// fakeTransactor runs fn directly against the mock stores.
type fakeTransactor struct {
	stores    repo.Stores
	commitErr error
	calls     int
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(repo.Stores) error) error {
	f.calls++
	if err := fn(f.stores); err != nil {
		return err
	}
	return f.commitErr
}

var _ repo.Transactor = (*fakeTransactor)(nil)

// fakeMetrics counts every signal it receives.
type fakeMetrics struct {
	successes   int
	errors      int
	timerStarts int
	timerStops  int
}

func (f *fakeMetrics) IncSuccess() { f.successes++ }
func (f *fakeMetrics) IncError()   { f.errors++ }
func (f *fakeMetrics) StartTimer() func() {
	f.timerStarts++
	return func() { f.timerStops++ }
}

var _ service.BookingMetrics = (*fakeMetrics)(nil)

type fakePublisher struct {
	events []domain.BookingEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e domain.BookingEvent) error {
	f.events = append(f.events, e)
	return f.err
}

var _ service.EventPublisher = (*fakePublisher)(nil)

type fakeMedia struct {
	upload func(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	calls  int
}

func (f *fakeMedia) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	f.calls++
	return f.upload(ctx, name, contentType, r, size)
}

var _ service.MediaStore = (*fakeMedia)(nil)

// plainHasher "hashes" by prefixing, so tests can assert on the stored value.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return domain.ErrUnauthorized
	}
	return nil
}

var _ service.PasswordHasher = plainHasher{}

type fakeTokens struct {
	issued []domain.User
}

func (f *fakeTokens) Issue(u domain.User) (string, time.Duration, error) {
	f.issued = append(f.issued, u)
	return "token-for-" + u.Email, 7 * 24 * time.Hour, nil
}

var _ service.TokenIssuer = (*fakeTokens)(nil)

// day returns a calendar date in March 2030.
func day(d int) time.Time {
	return time.Date(2030, time.March, d, 0, 0, 0, 0, time.UTC)
}

func stay(in, out int) domain.Stay {
	return domain.Stay{CheckIn: day(in), CheckOut: day(out)}
}
