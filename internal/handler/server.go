// Package handler implements the HTTP handlers for the hotel booking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, room.go, booking.go, ...) but share the same Server struct
// so they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/middleware"
)

// RoomServicer defines the room inventory operations the room handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type RoomServicer interface {
	Add(ctx context.Context, room domain.Room, photo *domain.Photo) (domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Types(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id int64) (domain.Room, error)
	Update(ctx context.Context, id int64, patch domain.RoomPatch, photo *domain.Photo) (domain.Room, error)
	Delete(ctx context.Context, id int64) error
	AvailableByDatesAndType(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error)
	AllAvailable(ctx context.Context) ([]domain.Room, error)
}

// BookingServicer defines the booking operations the booking handlers depend on.
type BookingServicer interface {
	Create(ctx context.Context, roomID, guestID int64, proposed domain.Booking) (domain.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// UserServicer defines the identity operations the auth and user handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	CreateUser(ctx context.Context, reg domain.Registration) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.BookingExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	rooms    RoomServicer
	bookings BookingServicer
	users    UserServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger means slog.Default().
func NewServer(rooms RoomServicer, bookings BookingServicer, users UserServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{rooms: rooms, bookings: bookings, users: users, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns the API router. tokens verifies bearer tokens on protected routes.
func (s *Server) Routes(tokens middleware.TokenParser) http.Handler {
	requireAuth := middleware.RequireAuth(tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", s.ListRooms)
		r.Get("/types", s.ListRoomTypes)
		r.Get("/available", s.ListAvailableRooms)
		r.Get("/all-available", s.ListAllAvailableRooms)
		r.Get("/{id}", s.GetRoom)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, adminOnly)
			r.Post("/", s.AddRoom)
			r.Put("/{id}", s.UpdateRoom)
			r.Delete("/{id}", s.DeleteRoom)
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/code/{code}", s.GetBookingByCode)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/rooms/{roomId}/guests/{guestId}", s.CreateBooking)
			r.Delete("/{id}", s.CancelBooking)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", s.ListBookings)
				r.Get("/export", s.ExportBookings)
			})
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", s.GetMe)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", s.ListUsers)
			r.Post("/", s.CreateUser)
			r.Get("/{id}", s.GetUser)
			r.Delete("/{id}", s.DeleteUser)
		})
	})

	return r
}
