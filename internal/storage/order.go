package storage

import (
	"sort"

	"github.com/magabrotheeeer/barbershop/internal/models"
)

// SortNewestFirst упорядочивает отзывы по createdAt по убыванию, при равенстве по ID по убыванию.
func SortNewestFirst(items []*models.Testimonial) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
