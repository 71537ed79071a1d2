package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/sufra-dev/sufra/handlers"
	"github.com/sufra-dev/sufra/middlewares"
	"github.com/sufra-dev/sufra/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(h *handlers.Handler, auth *middlewares.Auth, staticDir string) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.ClientSession)

	api.HandleFunc("/auth/login", h.Login).Methods("POST")

	api.HandleFunc("/menu", h.ListMenu).Methods("GET")
	api.HandleFunc("/menu/{id}", h.GetMenuItem).Methods("GET")
	api.HandleFunc("/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/settings", h.GetSettings).Methods("GET")

	api.HandleFunc("/cart", h.GetCart).Methods("GET")
	api.HandleFunc("/cart", h.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", h.AddCartItem).Methods("POST")
	api.HandleFunc("/cart/items", h.UpdateCartItem).Methods("PUT")
	api.HandleFunc("/cart/items", h.RemoveCartItem).Methods("DELETE")

	api.HandleFunc("/orders", h.Checkout).Methods("POST")
	api.HandleFunc("/orders/mine", h.MyOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")

	// admin only
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware, middlewares.RequireRole(models.RoleAdmin))

	admin.HandleFunc("/menu", h.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{id}", h.UpdateMenuItem).Methods("PATCH")
	admin.HandleFunc("/menu/{id}", h.DeleteMenuItem).Methods("DELETE")
	admin.HandleFunc("/orders", h.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")

	// delivery staff (admins can cover a shift too)
	delivery := api.PathPrefix("/delivery").Subrouter()
	delivery.Use(auth.Middleware, middlewares.RequireRole(models.RoleDriver, models.RoleAdmin))

	delivery.HandleFunc("/orders", h.ListDeliverable).Methods("GET")
	delivery.HandleFunc("/orders/{id}/status", h.UpdateDeliveryStatus).Methods("PATCH")

	if staticDir != "" {
		router.PathPrefix("/").Handler(spaHandler{dir: staticDir})
	}

	return &Server{
		Router: router,
	}
}

// spaHandler serves the pre-built UI bundle and falls back to index.html for
// any unmatched path, leaving routing to the client.
type spaHandler struct {
	dir string
}

func (s spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
