package models

import "time"

// Testimonial представляет отзыв клиента. Модерации нет: при создании Approved всегда true.
type Testimonial struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"` // Оценка от 1 до 5
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// TestimonialInput — проверенные данные для вставки отзыва в хранилище.
type TestimonialInput struct {
	Name    string
	Rating  int
	Comment string
}

// DummyTestimonial используется для приёма отзыва из JSON-запроса.
type DummyTestimonial struct {
	Name    string `json:"name" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// Input переводит запрос в данные для хранилища.
func (d DummyTestimonial) Input() TestimonialInput {
	return TestimonialInput{
		Name:    d.Name,
		Rating:  d.Rating,
		Comment: d.Comment,
	}
}
