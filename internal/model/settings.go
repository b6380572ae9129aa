package model

import (
	"errors"
	"regexp"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var (
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrInvalidFrequency = errors.New("unknown notification frequency")
	ErrInvalidTheme     = errors.New("unknown theme")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Settings struct {
	Email             string    `json:"email"`
	Frequency         Frequency `json:"frequency"`
	Theme             Theme     `json:"theme"`
	PushNotifications bool      `json:"pushNotifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Frequency: FrequencyDaily,
		Theme:     ThemeAuto,
	}
}

// Validate accepts an empty email; notifications are simply off then.
func (s Settings) Validate() error {
	if s.Email != "" && !emailPattern.MatchString(s.Email) {
		return ErrInvalidEmail
	}

	switch s.Frequency {
	case FrequencyDaily, FrequencyWeekly:
	default:
		return ErrInvalidFrequency
	}

	switch s.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return ErrInvalidTheme
	}

	return nil
}
