package domain

import "errors"

// Vehicle errors
var (
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrDuplicatePlate    = errors.New("a vehicle with this plate number already exists")
	ErrPlateRequired     = errors.New("plate number is required")
	ErrApartmentRequired = errors.New("apartment is required")
)

// Credential errors
var (
	ErrCredentialNotFound = errors.New("admin settings not found")
)
