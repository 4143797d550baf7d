package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barbershop/internal/http/validation"
	"github.com/magabrotheeeer/barbershop/internal/models"
)

func TestError(t *testing.T) {
	resp := Error("something went wrong")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Message)
}

func TestValidationError(t *testing.T) {
	notes := "x"
	tests := []struct {
		name     string
		input    any
		contains []string
	}{
		{
			name: "missing required fields",
			input: models.DummyAppointment{
				Email: "john@example.com", Phone: "5551234567", Date: "2025-01-01", Time: "09:00",
			},
			contains: []string{"field Name is a required field", "field Service is a required field"},
		},
		{
			name: "bad email and short phone",
			input: models.DummyAppointment{
				Name: "John", Email: "not-an-email", Phone: "123", Service: "CUT",
				Date: "2025-01-01", Time: "09:00", Notes: &notes,
			},
			contains: []string{"field Email must be a valid email", "field Phone must be at least 10"},
		},
		{
			name: "non numeric phone and bad date",
			input: models.DummyAppointment{
				Name: "John", Email: "john@example.com", Phone: "555-123-4567", Service: "CUT",
				Date: "01/02/2025", Time: "09:00",
			},
			contains: []string{"field Phone can contain only numbers", "field Date must be a date in format 2006-01-02"},
		},
		{
			name: "time outside the slot grid",
			input: models.DummyAppointment{
				Name: "John", Email: "john@example.com", Phone: "5551234567", Service: "CUT",
				Date: "2025-01-01", Time: "9:00",
			},
			contains: []string{"field Time must be an hourly slot from 09:00 to 19:00"},
		},
		{
			name:     "rating out of range",
			input:    models.DummyTestimonial{Name: "A", Rating: 6, Comment: "c"},
			contains: []string{"field Rating must be at most 5"},
		},
	}

	validate := validation.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			require.Error(t, err)
			errs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)

			resp := ValidationError(errs)
			assert.Equal(t, StatusError, resp.Status)
			for _, want := range tt.contains {
				assert.Contains(t, resp.Message, want)
			}
		})
	}
}
