package model

import (
	"errors"
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: tag name is required")
	}
	if !hexColor.MatchString(t.Color) {
		return errors.New("model: tag color must be a hex colour")
	}
	return nil
}

func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}
