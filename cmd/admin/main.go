package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/cache"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/config"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/controller"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/logging"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/notify"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/session"
)

// app holds everything a command needs: one transport, one cache, one
// controller per entity. Built once per invocation.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	sess     *session.Store
	hub      *notify.Hub
	validate *validator.Validate

	branchClient    *api.BranchClient
	categoryClient  *api.CategoryClient
	serviceClient   *api.ServiceClient
	userClient      *api.UserClient
	bookingClient   *api.BookingClient
	dashboardClient *api.DashboardClient

	auth       *api.AuthClient
	branches   *controller.Controller[models.Branch, models.BranchPayload]
	categories *controller.Controller[models.Category, models.CategoryPayload]
	services   *controller.Controller[models.Service, models.ServicePayload]
	users      *controller.Controller[models.User, models.UserPayload]
	bookings   *controller.Bookings
}

func newApp() *app {
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}

	sess := session.Load(cfg.SessionFile)
	hub := notify.NewHub(log)

	client := api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Token:   sess.Token,
		OnUnauthorized: func() {
			// the CLI's version of the sign-in redirect
			sess.Clear()
			hub.Notify(notify.Warning, "session expired, please run `admin login`")
		},
		Logger: log,
	})

	validate := validator.New()
	deps := controller.Deps{
		Cache:    cache.New(),
		Notifier: hub,
		Validate: validate,
		Logger:   log,
	}

	branchClient := api.NewBranchClient(client)
	categoryClient := api.NewCategoryClient(client)
	serviceClient := api.NewServiceClient(client)
	userClient := api.NewUserClient(client)
	bookingClient := api.NewBookingClient(client)

	a := &app{
		cfg:      cfg,
		log:      log,
		sess:     sess,
		hub:      hub,
		validate: validate,

		branchClient:    branchClient,
		categoryClient:  categoryClient,
		serviceClient:   serviceClient,
		userClient:      userClient,
		bookingClient:   bookingClient,
		dashboardClient: api.NewDashboardClient(client),

		auth:       api.NewAuthClient(client),
		branches:   controller.NewBranches(branchClient, deps),
		categories: controller.NewCategories(categoryClient, deps),
		services:   controller.NewServices(serviceClient, deps),
		users:      controller.NewUsers(userClient, deps),
		bookings:   controller.NewBookings(bookingClient, serviceClient, branchClient, userClient, deps),
	}

	for _, c := range []interface{ SetPageSize(int) }{
		a.branches, a.categories, a.services, a.users, a.bookings,
	} {
		c.SetPageSize(cfg.PageSize)
	}

	return a
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	a := newApp()
	defer func() { _ = a.log.Sync() }()

	err := a.dispatch(os.Args[1], os.Args[2:])
	a.flushNotifications()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(args)
	case "logout":
		return a.cmdLogout(args)
	case "branch":
		return a.cmdBranch(args)
	case "category":
		return a.cmdCategory(args)
	case "service":
		return a.cmdService(args)
	case "user":
		return a.cmdUser(args)
	case "booking":
		return a.cmdBooking(args)
	case "stats":
		return a.cmdStats(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// flushNotifications prints what a dashboard would have shown as
// toasts.
func (a *app) flushNotifications() {
	for _, n := range a.hub.Drain() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: admin <command> [flags]

commands:
  login     -email -password
  logout
  branch    list|get|create|update|delete
  category  list|get|create|update|delete
  service   list|get|create|update|delete
  user      list|get|update|delete
  booking   list|create|status|slots|user
  stats`)
}
