package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/roombook/internal/conflict"
	"github.com/example/roombook/internal/persistence"
)

// BookingRepository captures the persistence operations needed by the booking service.
type BookingRepository interface {
	ReadBookings(ctx context.Context, date persistence.Date) ([]persistence.Booking, error)
	UpdateBookings(ctx context.Context, date persistence.Date, mutate func([]persistence.Booking) ([]persistence.Booking, error)) error
	BookingsInRange(ctx context.Context, r persistence.BookingRange) ([]persistence.Booking, error)
}

// UserDirectory resolves user identifiers during booking creation.
type UserDirectory interface {
	LoadUsers(ctx context.Context) (map[string]persistence.User, error)
}

// BookingService orchestrates validation, participant resolution, conflict
// checks, and persistence for bookings.
type BookingService struct {
	bookings    BookingRepository
	users       UserDirectory
	idGenerator func() string
	logger      *slog.Logger
}

// NewBookingService wires dependencies for the booking service.
func NewBookingService(bookings BookingRepository, users UserDirectory, idGenerator func() string) *BookingService {
	return NewBookingServiceWithLogger(bookings, users, idGenerator, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings BookingRepository, users UserDirectory, idGenerator func() string, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &BookingService{
		bookings:    bookings,
		users:       users,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// ResolveParticipants partitions participant identifiers into references
// resolved against the registry and guest strings, preserving input order in
// both lists.
func ResolveParticipants(ids []string, users map[string]persistence.User) ([]persistence.UserRef, []string) {
	known := make([]persistence.UserRef, 0, len(ids))
	guests := make([]string, 0)
	for _, id := range ids {
		if user, ok := users[id]; ok {
			known = append(known, persistence.ResolvedRef(id, user))
			continue
		}
		guests = append(guests, id)
	}
	return known, guests
}

type bookingFields struct {
	date  persistence.Date
	start persistence.ClockTime
	end   persistence.ClockTime
}

func validateBookingTimes(date, startTime, endTime string) (bookingFields, *ValidationError) {
	vErr := &ValidationError{}
	fields := bookingFields{}

	parsedDate, err := persistence.ParseDate(strings.TrimSpace(date))
	if err != nil {
		vErr.add("date", "must be an ISO YYYY-MM-DD date")
	} else {
		fields.date = parsedDate
	}

	start, err := persistence.ParseClockTime(strings.TrimSpace(startTime))
	if err != nil {
		vErr.add("start_time", "must be a 24-hour HH:MM time")
	} else {
		fields.start = start
	}

	end, err := persistence.ParseClockTime(strings.TrimSpace(endTime))
	if err != nil {
		vErr.add("end_time", "must be a 24-hour HH:MM time")
	} else {
		fields.end = end
	}

	if !vErr.HasErrors() && !fields.start.Before(fields.end) {
		vErr.add("end_time", "must be later than start_time")
	}
	return fields, vErr
}

// CreateBooking validates the input, resolves its user references, and
// appends it to the date's file. The duplicate-identifier check runs inside
// the date file's lock so concurrent creates for one date cannot both pass.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (booking persistence.Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking",
		"date", input.Date,
		"room_id", input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	fields, vErr := validateBookingTimes(input.Date, input.StartTime, input.EndTime)
	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("room_id", "must not be empty")
	}
	if strings.TrimSpace(input.BookedBy) == "" {
		vErr.add("booked_by", "must not be empty")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.bookings == nil || s.users == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = s.idGenerator()
	}

	// The duplicate check, user resolution, and append all run under the date
	// file's lock, so the sequence is atomic with respect to other creates
	// for the same date.
	err = s.bookings.UpdateBookings(ctx, fields.date, func(existing []persistence.Booking) ([]persistence.Booking, error) {
		for _, other := range existing {
			if other.ID == id {
				return nil, fmt.Errorf("booking %q on %s: %w", id, fields.date, ErrDuplicateBooking)
			}
		}

		users, lerr := s.users.LoadUsers(ctx)
		if lerr != nil {
			return nil, lerr
		}
		owner, ok := users[input.BookedBy]
		if !ok {
			return nil, fmt.Errorf("booked_by %q: %w", input.BookedBy, ErrUnknownUser)
		}
		known, guests := ResolveParticipants(input.Participants, users)
		if len(known) == 0 && len(guests) == 0 {
			return nil, ErrEmptyParticipants
		}

		booking = persistence.Booking{
			ID:           id,
			Date:         fields.date,
			RoomID:       strings.TrimSpace(input.RoomID),
			StartTime:    fields.start,
			EndTime:      fields.end,
			BookedBy:     persistence.ResolvedRef(input.BookedBy, owner),
			Participants: known,
			Guests:       guests,
			Extra:        input.Extra,
		}
		return append(existing, booking), nil
	})
	if err != nil {
		booking = persistence.Booking{}
		return
	}
	return
}

// CheckRoomAvailability reports whether the proposed interval is free on the
// queried room. Intervals are half-open, so a booking ending exactly when
// another starts never conflicts.
func (s *BookingService) CheckRoomAvailability(ctx context.Context, query AvailabilityQuery) (available bool, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CheckRoomAvailability",
		"date", query.Date,
		"room_id", query.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to check availability", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	fields, vErr := validateBookingTimes(query.Date, query.StartTime, query.EndTime)
	if strings.TrimSpace(query.RoomID) == "" {
		vErr.add("room_id", "must not be empty")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	existing, err := s.bookings.ReadBookings(ctx, fields.date)
	if err != nil {
		return
	}

	proposed := conflict.Interval{Start: fields.start.Minutes(), End: fields.end.Minutes()}
	for _, booking := range existing {
		if booking.RoomID != query.RoomID {
			continue
		}
		taken := conflict.Interval{Start: booking.StartTime.Minutes(), End: booking.EndTime.Minutes()}
		if proposed.Overlaps(taken) {
			return false, nil
		}
	}
	return true, nil
}

// BookingsInRange lists bookings whose date file falls inside the inclusive
// bounds, optionally filtered by room, concatenated in date order. User
// references come back resolved, exactly as ReadBookings returns them.
func (s *BookingService) BookingsInRange(ctx context.Context, query RangeQuery) (bookings []persistence.Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "BookingsInRange",
		"start", query.Start,
		"end", query.End,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	vErr := &ValidationError{}
	rng := persistence.BookingRange{RoomIDs: query.RoomIDs}
	if strings.TrimSpace(query.Start) != "" {
		start, perr := persistence.ParseDate(strings.TrimSpace(query.Start))
		if perr != nil {
			vErr.add("start", "must be an ISO YYYY-MM-DD date")
		} else {
			rng.Start = &start
		}
	}
	if strings.TrimSpace(query.End) != "" {
		end, perr := persistence.ParseDate(strings.TrimSpace(query.End))
		if perr != nil {
			vErr.add("end", "must be an ISO YYYY-MM-DD date")
		} else {
			rng.End = &end
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	bookings, err = s.bookings.BookingsInRange(ctx, rng)
	return
}

// Bookings returns one date's bookings with references resolved.
func (s *BookingService) Bookings(ctx context.Context, date string) ([]persistence.Booking, error) {
	if s == nil {
		return nil, fmt.Errorf("BookingService is nil")
	}
	parsed, err := persistence.ParseDate(strings.TrimSpace(date))
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("date", "must be an ISO YYYY-MM-DD date")
		return nil, vErr
	}
	if s.bookings == nil {
		return nil, fmt.Errorf("booking repository not configured")
	}
	return s.bookings.ReadBookings(ctx, parsed)
}
