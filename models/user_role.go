package models

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleSubject UserRole = "SUBJECT"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:   "관리자",
	UserRoleSubject: "피험자",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
