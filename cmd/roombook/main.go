// Command roombook is a maintenance tool for a flat-file booking data
// folder: it registers users and rooms, creates bookings, and answers
// availability and range queries against the files a booking application
// reads and writes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/config"
	"github.com/example/roombook/internal/logging"
	"github.com/example/roombook/internal/persistence"
	"github.com/example/roombook/internal/persistence/jsonfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	app, err := newApp(afero.NewOsFs(), cfg.DataDir, logger, uuid.NewString)
	if err != nil {
		logger.Error("failed to open data folder", "error", err)
		os.Exit(1)
	}

	ctx := logging.ContextWithLogger(context.Background(), logger)
	if err := app.run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Error("command failed", "error", err, "error_kind", application.ErrorKind(err))
		os.Exit(1)
	}
}

type app struct {
	store    *jsonfile.Store
	users    *application.UserService
	rooms    *application.RoomService
	bookings *application.BookingService
}

func newApp(fs afero.Fs, dataDir string, logger *slog.Logger, idGenerator func() string) (*app, error) {
	store, err := jsonfile.Open(fs, dataDir)
	if err != nil {
		return nil, err
	}

	userRepo := jsonfile.NewUserRepository(store)
	roomRepo := jsonfile.NewRoomRepository(store)
	bookingRepo := jsonfile.NewBookingRepository(store, userRepo)

	return &app{
		store:    store,
		users:    application.NewUserServiceWithLogger(userRepo, logger),
		rooms:    application.NewRoomServiceWithLogger(roomRepo, logger),
		bookings: application.NewBookingServiceWithLogger(bookingRepo, userRepo, idGenerator, logger),
	}, nil
}

const usage = `usage: roombook <command> [arguments]

commands:
  add-user <id> <name> [nickname]   register a user (no-op when id exists)
  add-room <id> [name]              append a room to the catalog
  book                              create a booking (see book -h)
  avail                             check room availability (see avail -h)
  list                              list bookings in a date range (see list -h)
  summary                           show data folder contents
`

func (a *app) run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	switch args[0] {
	case "add-user":
		return a.addUser(ctx, args[1:], out)
	case "add-room":
		return a.addRoom(ctx, args[1:], out)
	case "book":
		return a.book(ctx, args[1:], out)
	case "avail":
		return a.avail(ctx, args[1:], out)
	case "list":
		return a.list(ctx, args[1:], out)
	case "summary":
		return a.summary(ctx, out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) addUser(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: roombook add-user <id> <name> [nickname]")
	}
	input := application.UserInput{ID: args[0], Name: args[1]}
	if len(args) == 3 {
		input.Nickname = args[2]
	}

	added, err := a.users.AddUser(ctx, input)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(out, "user %s already registered\n", input.ID)
		return nil
	}
	fmt.Fprintf(out, "user %s added\n", input.ID)
	return nil
}

func (a *app) addRoom(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: roombook add-room <id> [name]")
	}

	room := persistence.Room{ID: args[0]}
	if len(args) == 2 {
		name, err := json.Marshal(args[1])
		if err != nil {
			return err
		}
		room.Extra = map[string]json.RawMessage{"name": name}
	}

	rooms, err := a.rooms.Rooms(ctx)
	if err != nil {
		return err
	}
	if err := a.rooms.SaveRooms(ctx, append(rooms, room)); err != nil {
		return err
	}
	fmt.Fprintf(out, "room %s added\n", room.ID)
	return nil
}

func (a *app) book(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(out)
	var input application.BookingInput
	fs.StringVar(&input.ID, "id", "", "booking identifier (generated when empty)")
	fs.StringVar(&input.Date, "date", "", "booking date, YYYY-MM-DD")
	fs.StringVar(&input.RoomID, "room", "", "room identifier")
	fs.StringVar(&input.StartTime, "start", "", "start time, HH:MM")
	fs.StringVar(&input.EndTime, "end", "", "end time, HH:MM")
	fs.StringVar(&input.BookedBy, "by", "", "booking owner user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	input.Participants = fs.Args()

	booking, err := a.bookings.CreateBooking(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "booking %s created on %s (%s %s-%s)\n",
		booking.ID, booking.Date, booking.RoomID, booking.StartTime, booking.EndTime)
	if len(booking.Guests) > 0 {
		fmt.Fprintf(out, "guests: %s\n", strings.Join(booking.Guests, ", "))
	}
	return nil
}

func (a *app) avail(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("avail", flag.ContinueOnError)
	fs.SetOutput(out)
	var query application.AvailabilityQuery
	fs.StringVar(&query.Date, "date", "", "date to check, YYYY-MM-DD")
	fs.StringVar(&query.RoomID, "room", "", "room identifier")
	fs.StringVar(&query.StartTime, "start", "", "start time, HH:MM")
	fs.StringVar(&query.EndTime, "end", "", "end time, HH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}

	available, err := a.bookings.CheckRoomAvailability(ctx, query)
	if err != nil {
		return err
	}
	if available {
		fmt.Fprintf(out, "%s is free on %s %s-%s\n", query.RoomID, query.Date, query.StartTime, query.EndTime)
	} else {
		fmt.Fprintf(out, "%s is booked on %s %s-%s\n", query.RoomID, query.Date, query.StartTime, query.EndTime)
	}
	return nil
}

func (a *app) list(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(out)
	var query application.RangeQuery
	var rooms string
	fs.StringVar(&query.Start, "start", "", "inclusive start date, YYYY-MM-DD")
	fs.StringVar(&query.End, "end", "", "inclusive end date, YYYY-MM-DD")
	fs.StringVar(&rooms, "rooms", "", "comma separated room ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rooms != "" {
		query.RoomIDs = strings.Split(rooms, ",")
	}

	bookings, err := a.bookings.BookingsInRange(ctx, query)
	if err != nil {
		return err
	}
	for _, booking := range bookings {
		owner := booking.BookedBy.ID
		if booking.BookedBy.Resolved {
			owner = booking.BookedBy.Name
		}
		fmt.Fprintf(out, "%s  %s  %s-%s  %s  by %s\n",
			booking.Date, booking.RoomID, booking.StartTime, booking.EndTime, booking.ID, owner)
	}
	fmt.Fprintf(out, "%d booking(s)\n", len(bookings))
	return nil
}

func (a *app) summary(ctx context.Context, out io.Writer) error {
	users, err := a.users.Users(ctx)
	if err != nil {
		return err
	}
	rooms, err := a.rooms.Rooms(ctx)
	if err != nil {
		return err
	}
	bookings, err := a.bookings.BookingsInRange(ctx, application.RangeQuery{})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "data folder: %s\n", a.store.Root())
	fmt.Fprintf(out, "users: %d\nrooms: %d\nbookings: %d\n", len(users), len(rooms), len(bookings))
	return nil
}
