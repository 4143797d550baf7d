package models

import "time"

// ContactMessage представляет сообщение, отправленное через форму обратной связи.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactMessageInput — проверенные данные для вставки сообщения в хранилище.
type ContactMessageInput struct {
	Name    string
	Email   string
	Message string
}

// DummyContactMessage используется для приёма сообщения из JSON-запроса.
type DummyContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Input переводит запрос в данные для хранилища.
func (d DummyContactMessage) Input() ContactMessageInput {
	return ContactMessageInput{
		Name:    d.Name,
		Email:   d.Email,
		Message: d.Message,
	}
}
