package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barbershop/internal/models"
)

func validAppointment() models.DummyAppointment {
	return models.DummyAppointment{
		Name:    "John Smith",
		Email:   "john@example.com",
		Phone:   "5551234567",
		Service: "CLASSIC CUT",
		Date:    "2025-01-01",
		Time:    "09:00",
	}
}

func TestNew_Appointment(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*models.DummyAppointment)
		wantTag  string
		wantFail bool
	}{
		{name: "валидная запись", modify: func(_ *models.DummyAppointment) {}},
		{name: "дата в чужом формате", modify: func(d *models.DummyAppointment) { d.Date = "01/02/2025" }, wantTag: "datetime", wantFail: true},
		{name: "несуществующая дата", modify: func(d *models.DummyAppointment) { d.Date = "2025-02-30" }, wantTag: "datetime", wantFail: true},
		{name: "время без ведущего нуля", modify: func(d *models.DummyAppointment) { d.Time = "9:00" }, wantTag: "slot", wantFail: true},
		{name: "время не из сетки", modify: func(d *models.DummyAppointment) { d.Time = "25:99" }, wantTag: "slot", wantFail: true},
		{name: "время словом", modify: func(d *models.DummyAppointment) { d.Time = "banana" }, wantTag: "slot", wantFail: true},
		{name: "последний слот дня", modify: func(d *models.DummyAppointment) { d.Time = "19:00" }},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAppointment()
			tt.modify(&in)

			var err error
			require.NotPanics(t, func() { err = v.Struct(in) })
			if !tt.wantFail {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func TestNew_OtherRequests(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(models.DummyTestimonial{Name: "A", Rating: 5, Comment: "c"}))
	assert.Error(t, v.Struct(models.DummyTestimonial{Name: "A", Rating: 0, Comment: "c"}))
	assert.NoError(t, v.Struct(models.DummyContactMessage{Name: "A", Email: "a@b.co", Message: "hi"}))
	assert.NoError(t, v.Struct(models.Credentials{Username: "deep", Password: "x"}))
}
