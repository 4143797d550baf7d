// Package catalog отдаёт прайс-лист услуг и отзывы клиентов.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/models"
)

const servicesKey = "barbershop:services"

// Repository — часть хранилища, нужная каталогу.
type Repository interface {
	GetServices(ctx context.Context) ([]*models.Service, error)
	GetApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error)
	CreateTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error)
}

// Cache хранит прайс-лист между запросами.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service читает прайс-лист через кеш и работает с отзывами.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создаёт сервис каталога.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Services возвращает прайс-лист. Ошибки кеша не мешают чтению из хранилища.
func (s *Service) Services(ctx context.Context) ([]*models.Service, error) {
	const op = "services.catalog.Services"

	var cached []*models.Service
	found, err := s.cache.Get(ctx, servicesKey, &cached)
	if err != nil {
		s.log.Warn("failed to read services from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	services, err := s.repo.GetServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, servicesKey, services, s.ttl); err != nil {
		s.log.Warn("failed to cache services", slog.String("key", servicesKey), sl.Err(err))
	}
	return services, nil
}

// Testimonials возвращает одобренные отзывы, новые первыми.
func (s *Service) Testimonials(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "services.catalog.Testimonials"

	testimonials, err := s.repo.GetApprovedTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return testimonials, nil
}

// AddTestimonial сохраняет отзыв. Модерации нет, отзыв сразу одобрен.
func (s *Service) AddTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error) {
	const op = "services.catalog.AddTestimonial"

	t, err := s.repo.CreateTestimonial(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("testimonial added", slog.Int("id", t.ID), slog.Int("rating", t.Rating))
	return t, nil
}
