package apperrors

import "errors"

var (
	ErrParkingLotNotFound = errors.New("parking lot not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOwnerRoleRequired  = errors.New("Related user is not having owner role")
	ErrImageNotFound      = errors.New("Image not found")
	ErrKeeperNotFound     = errors.New("Keeper not found")
	ErrInvalidInput       = errors.New("invalid input")
)
