package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/hotel-booking/internal/domain"
	"github.com/pkordes/hotel-booking/internal/repo"
)

// RoomService implements room inventory management and availability search.
type RoomService struct {
	rooms repo.RoomRepo
	media MediaStore
}

// NewRoomService constructs a RoomService. Photos are written to media.
func NewRoomService(rooms repo.RoomRepo, media MediaStore) *RoomService {
	return &RoomService{rooms: rooms, media: media}
}

// Add uploads the room photo and persists the room with its URL.
// Returns domain.ErrValidation if the type, price or photo is missing or invalid.
// An upload failure is reported as "error saving a room" wrapping domain.ErrUploadFailed.
func (s *RoomService) Add(ctx context.Context, room domain.Room, photo *domain.Photo) (domain.Room, error) {
	room.Type = strings.TrimSpace(room.Type)
	room.Price = strings.TrimSpace(room.Price)
	if photo == nil {
		return domain.Room{}, fmt.Errorf("%w: room photo is required", domain.ErrValidation)
	}
	if err := validateRoom(room); err != nil {
		return domain.Room{}, err
	}

	url, err := s.upload(ctx, photo)
	if err != nil {
		return domain.Room{}, fmt.Errorf("error saving a room: %w", err)
	}
	room.PhotoURL = url

	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		return domain.Room{}, fmt.Errorf("error saving a room: %w", err)
	}
	return created, nil
}

// List returns all rooms, newest first.
func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RoomService.List: %w", err)
	}
	return rooms, nil
}

// Types returns the distinct room types.
func (s *RoomService) Types(ctx context.Context) ([]string, error) {
	types, err := s.rooms.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RoomService.Types: %w", err)
	}
	return types, nil
}

// GetByID returns a room with its bookings.
// Returns domain.ErrRoomNotFound if no room with that ID exists.
func (s *RoomService) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.GetByID: %w", notFoundAs(err, domain.ErrRoomNotFound))
	}
	return room, nil
}

// Update applies the non-empty fields of patch and, when photo is non-nil,
// replaces the room photo.
func (s *RoomService) Update(ctx context.Context, id int64, patch domain.RoomPatch, photo *domain.Photo) (domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.Update: %w", notFoundAs(err, domain.ErrRoomNotFound))
	}

	if v := strings.TrimSpace(patch.Type); v != "" {
		room.Type = v
	}
	if v := strings.TrimSpace(patch.Price); v != "" {
		room.Price = v
	}
	if patch.Description != "" {
		room.Description = patch.Description
	}
	if err := validateRoom(room); err != nil {
		return domain.Room{}, err
	}

	if photo != nil {
		url, err := s.upload(ctx, photo)
		if err != nil {
			return domain.Room{}, fmt.Errorf("error updating a room: %w", err)
		}
		room.PhotoURL = url
	}

	updated, err := s.rooms.Update(ctx, room)
	if err != nil {
		return domain.Room{}, fmt.Errorf("service.RoomService.Update: %w", notFoundAs(err, domain.ErrRoomNotFound))
	}
	return updated, nil
}

// Delete removes a room and its bookings.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.RoomService.Delete: %w", notFoundAs(err, domain.ErrRoomNotFound))
	}
	return nil
}

// AvailableByDatesAndType returns rooms of roomType with no booking touching stay.
func (s *RoomService) AvailableByDatesAndType(ctx context.Context, stay domain.Stay, roomType string) ([]domain.Room, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return nil, fmt.Errorf("%w: room type is required", domain.ErrValidation)
	}
	if stay.CheckIn.IsZero() || stay.CheckOut.IsZero() {
		return nil, fmt.Errorf("%w: check in and check out dates are required", domain.ErrValidation)
	}
	stay = domain.NewStay(stay.CheckIn, stay.CheckOut)
	if !stay.CheckOut.After(stay.CheckIn) {
		return nil, fmt.Errorf("%w: check out date must come after check in date", domain.ErrValidation)
	}

	rooms, err := s.rooms.ListAvailable(ctx, stay, roomType)
	if err != nil {
		return nil, fmt.Errorf("service.RoomService.AvailableByDatesAndType: %w", err)
	}
	return rooms, nil
}

// AllAvailable returns rooms that hold no bookings at all.
func (s *RoomService) AllAvailable(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListUnbooked(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RoomService.AllAvailable: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) upload(ctx context.Context, photo *domain.Photo) (string, error) {
	url, err := s.media.Upload(ctx, photo.Name, photo.ContentType, photo.Body, photo.Size)
	if err != nil {
		return "", err
	}
	return url, nil
}

// priceFormat matches what the NUMERIC(10,2) price column accepts verbatim.
var priceFormat = regexp.MustCompile(`^(\d+)(?:\.\d{1,2})?$`)

// maxPriceIntDigits is the integer precision of NUMERIC(10,2).
const maxPriceIntDigits = 8

// validateRoom enforces business rules on a room.
func validateRoom(r domain.Room) error {
	if r.Type == "" {
		return fmt.Errorf("%w: room type is required", domain.ErrValidation)
	}
	if r.Price == "" {
		return fmt.Errorf("%w: room price is required", domain.ErrValidation)
	}
	if strings.HasPrefix(r.Price, "-") {
		return fmt.Errorf("%w: room price must not be negative", domain.ErrValidation)
	}
	m := priceFormat.FindStringSubmatch(r.Price)
	if m == nil {
		return fmt.Errorf("%w: room price %q must be a decimal with at most two fraction digits", domain.ErrValidation, r.Price)
	}
	if len(strings.TrimLeft(m[1], "0")) > maxPriceIntDigits {
		return fmt.Errorf("%w: room price must be below 100000000", domain.ErrValidation)
	}
	return nil
}
