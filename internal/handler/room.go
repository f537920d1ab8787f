package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// AddRoom handles POST /rooms (multipart: photo, roomType, roomPrice, roomDescription).
func (s *Server) AddRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		badRequest(w, "expected a multipart form")
		return
	}
	photo, file, err := formPhoto(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}

	room := domain.Room{
		Type:        formValue(r, "roomType"),
		Price:       formValue(r, "roomPrice"),
		Description: r.FormValue("roomDescription"),
	}
	if photo == nil || room.Type == "" || room.Price == "" {
		badRequest(w, "please provide values for all fields (photo, roomType, roomPrice)")
		return
	}

	created, err := s.rooms.Add(r.Context(), room, photo)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			validationFailed(w, err)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, roomToResponse(created))
}

// ListRooms handles GET /rooms.
func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomsToResponse(rooms))
}

// ListRoomTypes handles GET /rooms/types.
func (s *Server) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.rooms.Types(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if types == nil {
		types = []string{}
	}
	writeJSON(w, http.StatusOK, types)
}

// GetRoom handles GET /rooms/{id}. The room's bookings are included.
func (s *Server) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	room, err := s.rooms.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "room not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomToResponse(room))
}

// ListAvailableRooms handles GET /rooms/available?checkInDate=&checkOutDate=&roomType=.
func (s *Server) ListAvailableRooms(w http.ResponseWriter, r *http.Request) {
	checkIn, err := queryDate(r, "checkInDate")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	checkOut, err := queryDate(r, "checkOutDate")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	roomType := formValue(r, "roomType")
	if checkIn == nil || checkOut == nil || roomType == "" {
		badRequest(w, "please provide values for all fields (checkInDate, roomType, checkOutDate)")
		return
	}

	stay := domain.NewStay(checkIn.Time, checkOut.Time)
	rooms, err := s.rooms.AvailableByDatesAndType(r.Context(), stay, roomType)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			validationFailed(w, err)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomsToResponse(rooms))
}

// ListAllAvailableRooms handles GET /rooms/all-available.
func (s *Server) ListAllAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.rooms.AllAvailable(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomsToResponse(rooms))
}

// UpdateRoom handles PUT /rooms/{id}. Every form field, including the photo, is optional.
func (s *Server) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		badRequest(w, "expected a multipart form")
		return
	}
	photo, file, err := formPhoto(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}

	patch := domain.RoomPatch{
		Type:        formValue(r, "roomType"),
		Price:       formValue(r, "roomPrice"),
		Description: r.FormValue("roomDescription"),
	}
	updated, err := s.rooms.Update(r.Context(), id, patch, photo)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "room not found")
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		default:
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, roomToResponse(updated))
}

// DeleteRoom handles DELETE /rooms/{id}.
func (s *Server) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.rooms.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "room not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
