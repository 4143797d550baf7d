// Package validation настраивает валидатор входящих запросов.
//
// В validator v9 нет проверки формата даты, поэтому теги datetime и slot
// регистрируются здесь. Без регистрации Struct паникует на неизвестном теге.
package validation

import (
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barbershop/internal/lib/slots"
)

// New возвращает валидатор с зарегистрированными тегами datetime и slot.
func New() *validator.Validate {
	v := validator.New()
	// Регистрация падает только на пустом имени тега или nil-функции.
	if err := v.RegisterValidation("datetime", isDatetime); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("slot", isSlot); err != nil {
		panic(err)
	}
	return v
}

// isDatetime проверяет строку по раскладке из параметра тега, например datetime=2006-01-02.
func isDatetime(fl validator.FieldLevel) bool {
	layout := fl.Param()
	if layout == "" {
		layout = slots.DateLayout
	}
	_, err := time.Parse(layout, fl.Field().String())
	return err == nil
}

// isSlot проверяет, что время совпадает с одной из меток сетки бронирования.
func isSlot(fl validator.FieldLevel) bool {
	return slots.IsLabel(fl.Field().String())
}
