package models

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"is_admin"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
