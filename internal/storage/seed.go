package storage

import (
	"time"

	"github.com/magabrotheeeer/barbershop/internal/models"
)

// SeedServices возвращает фиксированный прайс-лист с ID начиная с 1.
func SeedServices() []models.Service {
	return []models.Service{
		{ID: 1, Name: "CLASSIC CUT", Description: "Traditional haircut with scissors and clippers", Price: 25, Icon: "scissors"},
		{ID: 2, Name: "BEARD TRIM", Description: "Professional beard styling and trimming", Price: 15, Icon: "beard"},
		{ID: 3, Name: "RAZOR SHAVE", Description: "Hot towel and straight razor traditional shave", Price: 30, Icon: "razor"},
		{ID: 4, Name: "HAIR + BEARD", Description: "Complete hair and beard styling package", Price: 35, Icon: "combo"},
	}
}

// SeedTestimonials возвращает три стартовых одобренных отзыва с ID начиная с 1.
func SeedTestimonials(now time.Time) []models.Testimonial {
	return []models.Testimonial{
		{ID: 1, Name: "MARK T.", Rating: 5, Comment: "Best barber in town! Always leave looking and feeling great.", Approved: true, CreatedAt: now},
		{ID: 2, Name: "JAMES L.", Rating: 5, Comment: "Been coming here for years. Consistent quality and great conversation!", Approved: true, CreatedAt: now},
		{ID: 3, Name: "ROBERT K.", Rating: 4, Comment: "Love the atmosphere and always get exactly what I ask for.", Approved: true, CreatedAt: now},
	}
}

// NextID возвращает максимальный ID плюс один, либо 1 для пустой коллекции.
func NextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
