package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brettboylen/redditscope/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	userPrefix      = regexp.MustCompile(`(?i)^u/`)
	validate        = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("reddit_username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// NormalizeUsername trims input like " u/Some_User " down to "Some_User" and validates it
func NormalizeUsername(raw string) (string, error) {
	username := userPrefix.ReplaceAllString(strings.TrimSpace(raw), "")

	if err := validate.Var(username, "required,max=20,reddit_username"); err != nil {
		return "", fmt.Errorf("%w: %q: %v", models.ErrInvalidUsername, raw, err)
	}
	return username, nil
}
