package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
	GetAll() ([]models.User, error)
}
