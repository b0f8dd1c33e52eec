package model

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrValidation — общая ошибка валидации входных данных (форма клиента и сервер).
var ErrValidation = errors.New("validation error")

const (
	MaxBucketNameLen  = 50
	MaxTaskTitleLen   = 100
	MaxDescriptionLen = 500
)

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateBucketName: непустое имя не длиннее 50 символов.
func ValidateBucketName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: bucket name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxBucketNameLen {
		return fmt.Errorf("%w: bucket name must be less than %d characters", ErrValidation, MaxBucketNameLen)
	}
	return nil
}

// ValidateColor: цвет в формате #RRGGBB.
func ValidateColor(color string) error {
	if !colorRe.MatchString(color) {
		return fmt.Errorf("%w: color must be a valid hex color", ErrValidation)
	}
	return nil
}

// ValidateTitle: непустой заголовок не длиннее 100 символов.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLen {
		return fmt.Errorf("%w: task title must be less than %d characters", ErrValidation, MaxTaskTitleLen)
	}
	return nil
}

// ValidateDescription: описание не длиннее 500 символов.
func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be less than %d characters", ErrValidation, MaxDescriptionLen)
	}
	return nil
}
