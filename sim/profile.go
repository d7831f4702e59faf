package sim

import "strings"

// DrivingProfile names a coefficient set governing how aggressively the
// telemetry walk moves each tick.
type DrivingProfile string

const (
	ProfileEco    DrivingProfile = "eco"
	ProfileNormal DrivingProfile = "normal"
	ProfileSport  DrivingProfile = "sport"
)

// ProfileCoeffs is the constant configuration carried by a DrivingProfile.
// Variations are the half-widths of the per-tick uniform walk; the fuel
// coefficients feed the consumption formula in step.go.
type ProfileCoeffs struct {
	RPMVariation      float64
	SpeedVariation    float64 // km/h
	TempVariation     float64 // degrees C
	ThrottleVariation float64 // percent
	BaseFuelRate      float64 // idle consumption coefficient
	SpeedFuelFactor   float64 // consumption per km/h
	FuelRateFactor    float64 // multiplier on the derived fuel-rate sensor
}

// Normal carries the baseline variations; Eco and Sport scale them by the
// 0.6 / 1.3 aggression factors.
var profileTable = map[DrivingProfile]ProfileCoeffs{
	ProfileEco: {
		RPMVariation:      90,
		SpeedVariation:    3.0,
		TempVariation:     0.18,
		ThrottleVariation: 1.8,
		BaseFuelRate:      0.00035,
		SpeedFuelFactor:   0.000007,
		FuelRateFactor:    0.9,
	},
	ProfileNormal: {
		RPMVariation:      150,
		SpeedVariation:    5.0,
		TempVariation:     0.3,
		ThrottleVariation: 3.0,
		BaseFuelRate:      0.0005,
		SpeedFuelFactor:   0.00001,
		FuelRateFactor:    1.0,
	},
	ProfileSport: {
		RPMVariation:      195,
		SpeedVariation:    6.5,
		TempVariation:     0.39,
		ThrottleVariation: 3.9,
		BaseFuelRate:      0.0007,
		SpeedFuelFactor:   0.000015,
		FuelRateFactor:    1.15,
	},
}

// ValidProfiles is the set of recognized profile names (empty means "not set").
// Shared by SettingsBundle.Validate and ParseProfile to avoid duplication.
var ValidProfiles = map[string]bool{"": true, "eco": true, "normal": true, "sport": true}

// ParseProfile maps a user-supplied name to a DrivingProfile. Matching is
// case-insensitive; unrecognized names fall back to Normal so the simulation
// is always runnable.
func ParseProfile(name string) DrivingProfile {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(ProfileEco):
		return ProfileEco
	case string(ProfileSport):
		return ProfileSport
	default:
		return ProfileNormal
	}
}

// Coeffs returns the coefficient table entry for p, defaulting to Normal
// for values not present in the table.
func (p DrivingProfile) Coeffs() ProfileCoeffs {
	if c, ok := profileTable[p]; ok {
		return c
	}
	return profileTable[ProfileNormal]
}
