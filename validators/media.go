package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrTitleLength       = errors.New("title must be between 3 and 20 characters long")
	ErrDescriptionLength = errors.New("description must be between 3 and 200 characters long")
	ErrFileTypeInvalid   = errors.New("file type must be image or video")
	ErrUsernameLength    = errors.New("username must be between 3 and 20 characters long")
)

// TitleValidator duplicates the form-layer bounds server-side
func TitleValidator(t string) error {
	if n := utf8.RuneCountInString(t); n < 3 || n > 20 {
		return ErrTitleLength
	}

	return nil
}

func DescriptionValidator(d string) error {
	if n := utf8.RuneCountInString(d); n < 3 || n > 200 {
		return ErrDescriptionLength
	}

	return nil
}

func FileTypeValidator(t string) error {
	if t != "image" && t != "video" {
		return ErrFileTypeInvalid
	}

	return nil
}

func UsernameValidator(u string) error {
	if n := utf8.RuneCountInString(u); n < 3 || n > 20 {
		return ErrUsernameLength
	}

	return nil
}
