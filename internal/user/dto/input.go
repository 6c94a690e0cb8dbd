package dto

import "github.com/cofitearia/milktea-pos/internal/model"

type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      model.Role

	HighContrastMode          bool
	LargeTextMode             bool
	ScreenReaderEnabled       bool
	KeyboardNavigationEnabled bool
	PreferredLanguage         string
}
