package model

import "strings"

type ServiceType string

const (
	ServiceLidar          ServiceType = "lidar"
	ServicePhotogrammetry ServiceType = "photogrammetry"
)

// ParseServiceType maps a raw discriminator to a service type. Unknown or
// missing values fall back to lidar, the documented default.
func ParseServiceType(raw string) ServiceType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ServicePhotogrammetry), "photo":
		return ServicePhotogrammetry
	default:
		return ServiceLidar
	}
}

// ServiceOptions selects a service type and its tier keys. Density,
// Accuracy and AddOns apply to lidar; GSD applies to photogrammetry.
// Mobilization toggles the travel surcharge for either type.
type ServiceOptions struct {
	Type         ServiceType `json:"type"`
	Density      string      `json:"density"`
	Accuracy     string      `json:"accuracy"`
	AddOns       []string    `json:"addOns"`
	GSD          string      `json:"gsd"`
	Mobilization bool        `json:"mobilization"`
}
