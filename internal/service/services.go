package service

import (
	"github.com/Jarecamang/ParkingPassport/internal/config"
	"github.com/Jarecamang/ParkingPassport/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Vehicle *VehicleService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, feed SearchFeed) *Services {
	return &Services{
		Auth:    NewAuthService(repos.Credential, repos.Session, cfg),
		Vehicle: NewVehicleService(repos.Vehicle, repos.SearchHistory, feed),
	}
}
