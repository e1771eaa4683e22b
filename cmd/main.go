package main

import (
	"context"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/bistroboss/bistro-gobackend/internal/auth"
	"github.com/bistroboss/bistro-gobackend/internal/config"
	"github.com/bistroboss/bistro-gobackend/internal/db"
	"github.com/bistroboss/bistro-gobackend/internal/gateway"
	"github.com/bistroboss/bistro-gobackend/internal/handlers"
	"github.com/bistroboss/bistro-gobackend/internal/middleware"
	"github.com/bistroboss/bistro-gobackend/internal/services"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}
	cfg := config.Load()

	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Println("Successfully connected to MongoDB")

	database := client.Database(cfg.Database)

	tokenService := auth.NewTokenService(cfg.TokenSecret)
	stripeClient := gateway.NewStripeClient(cfg.StripeKey)

	userService := services.NewUserService(database)
	menuService := services.NewMenuService(database)
	cartService := services.NewCartService(database)
	paymentService := services.NewPaymentService(database, stripeClient)
	statsService := services.NewStatsService(database)

	// Sweep cart entries orphaned by an interrupted payment commit.
	sweepCtx, cancelSweep := context.WithTimeout(context.Background(), 30*time.Second)
	if reaped, err := paymentService.ReapPaidCartEntries(sweepCtx); err != nil {
		log.Printf("Cart reconciliation sweep failed: %v", err)
	} else if reaped > 0 {
		log.Printf("Cart reconciliation sweep removed %d paid entries", reaped)
	}
	cancelSweep()

	tokenHandler := handlers.NewTokenHandler(tokenService)
	userHandler := handlers.NewUserHandler(userService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	statsHandler := handlers.NewStatsHandler(statsService)

	authenticate := middleware.Authenticate(tokenService)
	adminOnly := middleware.RequireRole(userService, auth.RoleAdmin)
	guard := func(h http.HandlerFunc) http.Handler { return authenticate(h) }
	adminGuard := func(h http.HandlerFunc) http.Handler { return authenticate(adminOnly(h)) }

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/jwt", tokenHandler.Issue).Methods("POST")

	router.HandleFunc("/menu", menuHandler.List).Methods("GET")
	router.HandleFunc("/menu/{id}", menuHandler.Get).Methods("GET")
	router.Handle("/menu", adminGuard(menuHandler.Create)).Methods("POST")
	router.Handle("/menu/{id}", adminGuard(menuHandler.Update)).Methods("PATCH")
	router.Handle("/menu/{id}", adminGuard(menuHandler.Delete)).Methods("DELETE")

	router.Handle("/users", adminGuard(userHandler.List)).Methods("GET")
	router.Handle("/user/admin/{email}", guard(userHandler.CheckAdmin)).Methods("GET")
	router.HandleFunc("/user/{email}", userHandler.Ensure).Methods("PUT")
	router.Handle("/user/{id}", adminGuard(userHandler.Promote)).Methods("PATCH")
	router.Handle("/user/{id}", adminGuard(userHandler.Delete)).Methods("DELETE")

	router.HandleFunc("/carts", cartHandler.List).Methods("GET")
	router.HandleFunc("/carts", cartHandler.Add).Methods("POST")
	router.HandleFunc("/cart/{id}", cartHandler.Delete).Methods("DELETE")

	router.Handle("/payment-history/{email}", guard(paymentHandler.History)).Methods("GET")
	router.HandleFunc("/create-payment-intent", paymentHandler.CreateIntent).Methods("POST")
	router.HandleFunc("/payment", paymentHandler.Record).Methods("POST")

	router.HandleFunc("/admin-home", statsHandler.AdminHome).Methods("GET")
	router.HandleFunc("/order-stats", statsHandler.OrderStats).Methods("GET")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.AllowCredentials(),
	)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      cors(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
