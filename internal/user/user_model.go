package user

import "gorm.io/gorm"

// Role names used by the role middleware. league_manager holds the
// league-management capability (start drafts, review jersey requests,
// pick for any team).
const (
	RoleAdmin         = "admin"
	RoleLeagueManager = "league_manager"
	RolePlayer        = "player"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique" json:"username"`
	Email    string `gorm:"unique" json:"email"`
	Password string `json:"-"`
	Roles    []Role `gorm:"many2many:user_roles" json:"roles"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
}
