package models

// User представляет учётную запись администратора.
// Password хранится в формате hash.salt и никогда не отдаётся клиенту.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials — структура входных данных для входа администратора.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
