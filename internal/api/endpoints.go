package api

const (
	epBranch   = "/api/v1/branch"
	epCategory = "/api/v1/category"
	epService  = "/api/v1/service"
	epBooking  = "/api/v1/booking"
	epUser     = "/api/v1/user"

	epBookingSlots   = epBooking + "/slots"
	epLogin          = epUser + "/login"
	epLogout         = epUser + "/logout"
	epDashboardStats = "/api/v1/dashboard/stats"
)
