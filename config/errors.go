package config

import "errors"

var (
	ErrNoImages        = errors.New("config: no images")
	ErrNoEffects       = errors.New("config: empty effect catalog")
	ErrInvalidDuration = errors.New("config: invalid duration")
	ErrUnknownVendor   = errors.New("config: unknown vendor")
	ErrRead            = errors.New("config: read failed")
	ErrParse           = errors.New("config: parse failed")
)
