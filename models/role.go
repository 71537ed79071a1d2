package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDriver
}
