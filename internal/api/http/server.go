package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gamehub-backend/internal/security"
	"gamehub-backend/internal/service"
)

// Services bundles everything the HTTP API exposes.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Equipment service.EquipmentService
	Rentals   service.RentalService
	Repairs   service.RepairService
	Pricing   service.PricingService
}

// NewRouter builds the API router. Routes are split into three tiers: public
// (login), authenticated (day-to-day shop operations), and manager-only
// (user administration, pricing, earnings, hard deletes).
func NewRouter(svcs Services, tokens security.TokenManager, loc *time.Location) *mux.Router {
	root := mux.NewRouter()
	root.Use(RequestMiddleware)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	authHandler.RegisterRoutes(api)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	manager := api.NewRoute().Subrouter()
	manager.Use(AuthMiddleware(tokens), RequireManager)

	userHandler := NewUserHandler(svcs.Users)
	userHandler.RegisterRoutes(authed)
	userHandler.RegisterManagerRoutes(manager)

	equipmentHandler := NewEquipmentHandler(svcs.Equipment)
	equipmentHandler.RegisterRoutes(authed)
	equipmentHandler.RegisterManagerRoutes(manager)

	rentalHandler := NewRentalHandler(svcs.Rentals, loc)
	rentalHandler.RegisterRoutes(authed)
	rentalHandler.RegisterManagerRoutes(manager)

	repairHandler := NewRepairHandler(svcs.Repairs)
	repairHandler.RegisterRoutes(authed)
	repairHandler.RegisterManagerRoutes(manager)

	pricingHandler := NewPricingHandler(svcs.Pricing)
	pricingHandler.RegisterRoutes(authed)
	pricingHandler.RegisterManagerRoutes(manager)

	return root
}
