// Package barbershop собирает HTTP-приложение сайта барбершопа.
package barbershop

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/available"
	"github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/complete"
	appointmentcreate "github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/create"
	appointmentlist "github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/list"
	appointmentremove "github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/remove"
	"github.com/magabrotheeeer/barbershop/internal/http/handlers/appointment/taken"
	"github.com/magabrotheeeer/barbershop/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/barbershop/internal/http/handlers/catalog/services"
	contactcreate "github.com/magabrotheeeer/barbershop/internal/http/handlers/contact/create"
	contactlist "github.com/magabrotheeeer/barbershop/internal/http/handlers/contact/list"
	contactremove "github.com/magabrotheeeer/barbershop/internal/http/handlers/contact/remove"
	"github.com/magabrotheeeer/barbershop/internal/http/handlers/health"
	testimonialcreate "github.com/magabrotheeeer/barbershop/internal/http/handlers/testimonial/create"
	testimoniallist "github.com/magabrotheeeer/barbershop/internal/http/handlers/testimonial/list"
	"github.com/magabrotheeeer/barbershop/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barbershop/internal/metrics"
	authservice "github.com/magabrotheeeer/barbershop/internal/services/auth"
	"github.com/magabrotheeeer/barbershop/internal/services/booking"
	"github.com/magabrotheeeer/barbershop/internal/services/catalog"
	"github.com/magabrotheeeer/barbershop/internal/services/contact"
)

// Services — сервисы, которые обслуживают маршруты.
type Services struct {
	Booking  *booking.Service
	Catalog  *catalog.Service
	Contact  *contact.Service
	Verifier authservice.Verifier
}

// RegisterRoutes регистрирует все маршруты приложения.
// trustProxy подставляет адрес клиента из заголовков прокси; без него лимитер
// считает запросы по адресу соединения и подделка X-Forwarded-For не помогает.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, m *metrics.Metrics, limiter *middlewarectx.RateLimiter, trustProxy bool) {
	// Глобальные middleware
	r.Use(middleware.RequestID)
	if trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics(m),
	)

	limited := limiter.Middleware(logger)

	r.Get("/health", health.New(logger).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/services", services.New(logger, svc.Catalog).ServeHTTP)

		r.With(limited).Post("/appointments", appointmentcreate.New(logger, svc.Booking).ServeHTTP)
		r.Get("/appointments/date/{date}", taken.New(logger, svc.Booking).ServeHTTP)
		r.Get("/appointments/available/{date}", available.New(logger, svc.Booking).ServeHTTP)

		r.Get("/testimonials", testimoniallist.New(logger, svc.Catalog).ServeHTTP)
		r.With(limited).Post("/testimonials", testimonialcreate.New(logger, svc.Catalog).ServeHTTP)
		r.With(limited).Post("/contact", contactcreate.New(logger, svc.Contact).ServeHTTP)

		// Административные конечные точки. Аутентификации нет, логин только проверяет пароль.
		r.Route("/admin", func(r chi.Router) {
			r.With(limited).Post("/login", login.New(logger, svc.Verifier).ServeHTTP)
			r.Get("/appointments", appointmentlist.New(logger, svc.Booking).ServeHTTP)
			r.Delete("/appointments/{id}", appointmentremove.New(logger, svc.Booking).ServeHTTP)
			r.Patch("/appointments/{id}/complete", complete.New(logger, svc.Booking).ServeHTTP)
			r.Get("/contact-messages", contactlist.New(logger, svc.Contact).ServeHTTP)
			r.Delete("/contact-messages/{id}", contactremove.New(logger, svc.Contact).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
