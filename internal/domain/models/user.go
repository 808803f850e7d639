package models

// User — администратор панели управления
type User struct {
	Username string
	PassHash []byte
	Role     string
}

const RoleAdmin = "admin"
