package models

// User представляет пользователя магазина
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"` // может отсутствовать
	PassHash []byte  `json:"-"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	IsAdmin  bool    `json:"is_admin"`
}
