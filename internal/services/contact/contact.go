// Package contact принимает сообщения из формы обратной связи.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// Repository — часть хранилища для сообщений.
type Repository interface {
	CreateContactMessage(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error)
	GetContactMessages(ctx context.Context) ([]*models.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id int) (bool, error)
}

// Service управляет сообщениями обратной связи.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт сервис.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Send сохраняет сообщение.
func (s *Service) Send(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error) {
	const op = "services.contact.Send"

	msg, err := s.repo.CreateContactMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("contact message received", slog.Int("id", msg.ID))
	return msg, nil
}

// List возвращает все сообщения.
func (s *Service) List(ctx context.Context) ([]*models.ContactMessage, error) {
	const op = "services.contact.List"

	msgs, err := s.repo.GetContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return msgs, nil
}

// Remove удаляет сообщение. Для неизвестного id возвращает storage.ErrNotFound.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.contact.Remove"

	deleted, err := s.repo.DeleteContactMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.log.Info("contact message removed", slog.Int("id", id))
	return nil
}
