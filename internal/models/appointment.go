// Package models содержит доменные структуры сайта барбершопа: записи на приём,
// отзывы, сообщения обратной связи, услуги и пользователей,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Appointment представляет собой запись клиента на определённый слот (дата + время).
// Notes равен nil, если клиент не оставил комментарий; в JSON это поле отдаётся как null.
type Appointment struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"` // Дата в формате 2006-01-02
	Time      string    `json:"time"` // Метка слота, например "09:00"
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"` // Название услуги, не внешний ключ
	Notes     *string   `json:"notes"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentInput — проверенные данные для вставки записи в хранилище.
type AppointmentInput struct {
	Date    string
	Time    string
	Name    string
	Email   string
	Phone   string
	Service string
	Notes   *string
}

// DummyAppointment используется для приёма данных из JSON-запроса на бронирование,
// прежде чем конвертировать их в AppointmentInput.
type DummyAppointment struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,numeric,min=10,max=15"`
	Service string  `json:"service" validate:"required"`
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string  `json:"time" validate:"required,slot"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty"`
}

// Input переводит запрос в данные для хранилища.
func (d DummyAppointment) Input() AppointmentInput {
	return AppointmentInput{
		Date:    d.Date,
		Time:    d.Time,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Service: d.Service,
		Notes:   d.Notes,
	}
}
