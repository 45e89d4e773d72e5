package http

import (
	"net/http"

	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	availabilityHandler   *handler.AvailabilityHandler
	bookingHandler        *handler.BookingHandler
	doctorHandler         *handler.DoctorHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	authMiddleware        *middleware.AuthMiddleware
	rateLimitMiddleware   *middleware.RateLimitMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	doctorHandler *handler.DoctorHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		availabilityHandler:   availabilityHandler,
		bookingHandler:        bookingHandler,
		doctorHandler:         doctorHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		authMiddleware:        authMiddleware,
		rateLimitMiddleware:   rateLimitMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Availability (any authenticated user)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("/{doctorId}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.Handle("/appointments", r.rateLimitMiddleware.Handle(http.HandlerFunc(r.bookingHandler.BookAppointment))).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.bookingHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.bookingHandler.GetMyAppointment).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/cancel", r.bookingHandler.CancelMyAppointment).Methods(http.MethodPut)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/appointments", r.doctorHandler.GetAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}", r.doctorHandler.GetAppointment).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/cancel", r.doctorHandler.CancelAppointment).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments/{id}/complete", r.doctorHandler.CompleteAppointment).Methods(http.MethodPut)

	doctor.HandleFunc("/schedule", r.doctorScheduleHandler.SaveSchedule).Methods(http.MethodPut)
	doctor.HandleFunc("/schedule", r.doctorScheduleHandler.GetSchedule).Methods(http.MethodGet)
	doctor.HandleFunc("/schedules", r.doctorScheduleHandler.GetSchedules).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
