package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/controller"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/notify"
)

// inputDateFormat is what the CLI accepts for dates; the wire format is
// the API's business.
const inputDateFormat = "2006-01-02"

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	payload := models.LoginPayload{Email: *email, Password: *password}
	if err := a.validate.Struct(payload); err != nil {
		return err
	}

	token, err := a.auth.Login(context.Background(), payload)
	if err != nil {
		return err
	}
	if err := a.sess.SetToken(token); err != nil {
		return err
	}
	a.hub.Notify(notify.Success, "signed in")
	return nil
}

func (a *app) cmdLogout(args []string) error {
	// server-side logout is best effort; the local session always goes
	_ = a.auth.Logout(context.Background())
	a.sess.Clear()
	a.hub.Notify(notify.Info, "signed out")
	return nil
}

// entitySpec wires one entity's controller into the generic
// list/get/create/update/delete command shape.
type entitySpec[T, P any] struct {
	name   string
	ctrl   *controller.Controller[T, P]
	get    func(ctx context.Context, id string) (T, error)
	header []string
	row    func(T) []string
}

func runEntity[T, P any](a *app, spec entitySpec[T, P], args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s list|get|create|update|delete", spec.name)
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet(spec.name+" "+sub, flag.ExitOnError)
	page := fs.Int("page", 0, "zero-based page index")
	size := fs.Int("size", a.cfg.PageSize, "page size")
	id := fs.String("id", "", "record id")
	data := fs.String("data", "", "JSON payload")
	filter := fs.String("filter", "", "query filters, e.g. is_active=true")
	_ = fs.Parse(rest)

	ctx := context.Background()

	switch sub {
	case "list":
		if *filter != "" {
			v, err := url.ParseQuery(*filter)
			if err != nil {
				return fmt.Errorf("bad -filter: %w", err)
			}
			spec.ctrl.SetFilters(v)
		}
		spec.ctrl.SetPageSize(*size)
		spec.ctrl.SetPage(*page)

		res, err := spec.ctrl.Rows(ctx)
		if err != nil {
			return err
		}
		printTable(spec.header, mapRows(res.Items, spec.row))
		fmt.Printf("page %d, %d of %d total\n", *page, len(res.Items), res.Total)
		return nil

	case "get":
		if *id == "" {
			return fmt.Errorf("%s get: -id is required", spec.name)
		}
		rec, err := spec.get(ctx, *id)
		if err != nil {
			return err
		}
		printTable(spec.header, [][]string{spec.row(rec)})
		return nil

	case "create":
		var payload P
		if err := decodePayload(*data, &payload); err != nil {
			return err
		}
		spec.ctrl.StartCreate()
		return spec.ctrl.Submit(ctx, payload)

	case "update":
		if *id == "" {
			return fmt.Errorf("%s update: -id is required", spec.name)
		}
		rec, err := spec.get(ctx, *id)
		if err != nil {
			return err
		}
		var payload P
		if err := decodePayload(*data, &payload); err != nil {
			return err
		}
		spec.ctrl.StartEdit(rec)
		return spec.ctrl.Submit(ctx, payload)

	case "delete":
		if *id == "" {
			return fmt.Errorf("%s delete: -id is required", spec.name)
		}
		rec, err := spec.get(ctx, *id)
		if err != nil {
			return err
		}
		spec.ctrl.RequestDelete(rec)
		return spec.ctrl.ConfirmDelete(ctx)

	default:
		return fmt.Errorf("unknown %s subcommand %q", spec.name, sub)
	}
}

func (a *app) cmdBranch(args []string) error {
	return runEntity(a, entitySpec[models.Branch, models.BranchPayload]{
		name:   "branch",
		ctrl:   a.branches,
		get:    a.branchClient.Get,
		header: []string{"ID", "NAME", "LOCATION", "PHONE", "ACTIVE"},
		row: func(b models.Branch) []string {
			return []string{b.ID, b.Name, b.Location, b.PhoneNumber, strconv.FormatBool(b.IsActive)}
		},
	}, args)
}

func (a *app) cmdCategory(args []string) error {
	return runEntity(a, entitySpec[models.Category, models.CategoryPayload]{
		name:   "category",
		ctrl:   a.categories,
		get:    a.categoryClient.Get,
		header: []string{"ID", "NAME", "CREATED"},
		row: func(c models.Category) []string {
			return []string{c.ID, c.Name, c.CreatedAt}
		},
	}, args)
}

func (a *app) cmdService(args []string) error {
	return runEntity(a, entitySpec[models.Service, models.ServicePayload]{
		name:   "service",
		ctrl:   a.services,
		get:    a.serviceClient.Get,
		header: []string{"ID", "NAME", "CATEGORY", "MINUTES", "PRICE", "ACTIVE"},
		row: func(s models.Service) []string {
			return []string{
				s.ID, s.Name, s.Category.Name,
				strconv.Itoa(s.DurationMinute), strconv.Itoa(s.Price),
				strconv.FormatBool(s.IsActive),
			}
		},
	}, args)
}

func (a *app) cmdUser(args []string) error {
	return runEntity(a, entitySpec[models.User, models.UserPayload]{
		name:   "user",
		ctrl:   a.users,
		get:    a.userClient.Get,
		header: []string{"ID", "NAME", "EMAIL", "ROLE", "VERIFIED"},
		row: func(u models.User) []string {
			return []string{
				u.ID, u.FirstName + " " + u.LastName, u.Email,
				string(u.Role), strconv.FormatBool(u.Verified),
			}
		},
	}, args)
}

func (a *app) cmdBooking(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: booking list|create|status|slots|user")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("booking "+sub, flag.ExitOnError)
	page := fs.Int("page", 0, "zero-based page index")
	size := fs.Int("size", a.cfg.PageSize, "page size")
	id := fs.String("id", "", "booking id")
	status := fs.String("status", "", "booking status")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	serviceID := fs.String("service", "", "service id")
	branchID := fs.String("branch", "", "branch id")
	slot := fs.String("time", "", "time slot (HH:MM)")
	note := fs.String("note", "", "booking note")
	userID := fs.String("user", "", "user id")
	_ = fs.Parse(rest)

	ctx := context.Background()

	switch sub {
	case "list":
		filters := api.BookingFilters{Status: models.BookingStatus(*status)}
		if *date != "" {
			d, err := time.Parse(inputDateFormat, *date)
			if err != nil {
				return fmt.Errorf("bad -date: %w", err)
			}
			filters.BookedDate = d.Format(api.WireDateFormat)
		}
		a.bookings.Filter(filters)
		a.bookings.SetPageSize(*size)
		a.bookings.SetPage(*page)

		res, err := a.bookings.Rows(ctx)
		if err != nil {
			return err
		}
		header := []string{"ID", "USER", "SERVICE", "BRANCH", "DATE", "TIME", "STATUS"}
		printTable(header, mapRows(res.Items, func(b models.Booking) []string {
			return []string{
				b.ID, b.UserID, b.Service.Name, b.Branch.Name,
				b.BookedDate, b.BookedTime, string(b.Status),
			}
		}))
		fmt.Printf("page %d, %d of %d total\n", *page, len(res.Items), res.Total)
		return nil

	case "create":
		d, err := time.Parse(inputDateFormat, *date)
		if err != nil {
			return fmt.Errorf("bad -date: %w", err)
		}

		a.bookings.StartCreate()
		if err := a.bookings.SelectService(ctx, *serviceID); err != nil {
			return err
		}
		if err := a.bookings.SelectBranch(ctx, *branchID); err != nil {
			return err
		}
		if err := a.bookings.SelectDate(d); err != nil {
			return err
		}
		if err := a.bookings.SelectSlot(ctx, *slot); err != nil {
			return err
		}
		payload, err := a.bookings.Payload(*note)
		if err != nil {
			return err
		}
		return a.bookings.Submit(ctx, payload)

	case "status":
		if *id == "" {
			return fmt.Errorf("booking status: -id is required")
		}
		rec, err := a.bookingClient.Get(ctx, *id)
		if err != nil {
			return err
		}
		a.bookings.StartEdit(rec)
		return a.bookings.SubmitStatus(ctx, models.BookingStatus(*status))

	case "slots":
		if *branchID == "" || *date == "" {
			return fmt.Errorf("booking slots: -branch and -date are required")
		}
		d, err := time.Parse(inputDateFormat, *date)
		if err != nil {
			return fmt.Errorf("bad -date: %w", err)
		}
		slots, err := a.bookingClient.AvailableSlots(ctx, d.Format(api.WireDateFormat), *branchID)
		if err != nil {
			return err
		}
		printTable([]string{"SLOT", "AVAILABLE"}, mapRows(slots, func(s models.TimeSlot) []string {
			return []string{s.Slot, strconv.FormatBool(s.IsAvailable)}
		}))
		return nil

	case "user":
		if *userID == "" {
			return fmt.Errorf("booking user: -user is required")
		}
		u, err := a.bookings.UserInfo(ctx, *userID)
		if err != nil {
			return err
		}
		printTable([]string{"ID", "NAME", "EMAIL", "PHONE", "ROLE"}, [][]string{{
			u.ID, u.FirstName + " " + u.LastName, u.Email, u.PhoneNumber, string(u.Role),
		}})
		return nil

	default:
		return fmt.Errorf("unknown booking subcommand %q", sub)
	}
}

// cmdStats prints the landing page's headline counters.
func (a *app) cmdStats(args []string) error {
	stats, err := a.dashboardClient.Stats(context.Background())
	if err != nil {
		return err
	}
	printTable(
		[]string{"USERS", "CATEGORIES", "BRANCHES", "SERVICES", "BOOKINGS"},
		[][]string{{
			strconv.Itoa(stats.TotalUsers),
			strconv.Itoa(stats.TotalCategories),
			strconv.Itoa(stats.TotalBranches),
			strconv.Itoa(stats.TotalServices),
			strconv.Itoa(stats.TotalBookings),
		}},
	)
	return nil
}

func decodePayload(data string, out any) error {
	if data == "" {
		return fmt.Errorf("-data JSON payload is required")
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("bad -data: %w", err)
	}
	return nil
}
