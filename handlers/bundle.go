package handlers

import (
	userRepoPkg "tripmart/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single argument.
type HandlerBundle struct {
	// UserRepo backs the auth middleware's token-hash lookup.
	UserRepo userRepoPkg.UserRepository

	Auth          *AuthHandler
	Users         *UserHandler
	Bookings      *BookingHandler
	Orders        *OrderHandler
	Promos        *PromoHandler
	Reviews       *ReviewHandler
	Reports       *ReportHandler
	Catalog       *CatalogHandler
	Admin         *AdminHandler
	Notifications *NotificationHandler
}
