package user

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/jverbeek/hockeyclub/pkg/utils"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetUserByID(id uint) (*User, error)
	GetUserByUsername(username string) (*User, error)
	GetUserRoles(userID uint) ([]string, error)
	Exists(id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByUsername(username string) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserRoles(userID uint) ([]string, error) {
	var names []string
	err := r.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}

func (r *userRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SeedAdmin creates the default roles and a bootstrap admin account on an
// empty database.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		roles := make(map[string]Role, 3)
		for _, name := range []string{RoleAdmin, RoleLeagueManager, RolePlayer} {
			role := Role{Name: name}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
			roles[name] = role
		}

		hashed, err := utils.HashPassword("changeme")
		if err != nil {
			return err
		}
		admin := User{
			Username: "admin",
			Email:    "admin@hockeyclub.local",
			Password: hashed,
			Roles:    []Role{roles[RoleAdmin], roles[RoleLeagueManager]},
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Seeded default admin user (username: admin)")
		return nil
	})
}
