package models

// Service представляет услугу из прайс-листа. Список фиксирован и заполняется при seed.
type Service struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // Цена в целых единицах валюты
	Icon        string `json:"icon"`
}
