package model

import (
	"io"
	"strconv"
	"strings"
)

// LoginForm is bound from the login page.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// RegisterForm is bound from the registration page. Age stays a raw string
// so that an invalid value can be echoed back to the form unchanged.
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Age      string `form:"age"`
	Location string `form:"location"`
}

// ImageUpload is an optional photo attached to an ad form.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// AdForm is bound from the post-ad and edit pages. Optional fields are sent
// to the backend only when non-empty.
type AdForm struct {
	Title       string       `form:"title"`
	Description string       `form:"description"`
	Category    string       `form:"category"`
	Location    string       `form:"location"`
	Age         string       `form:"age"`
	Phone       string       `form:"phone"`
	WhatsApp    string       `form:"whatsapp"`
	Image       *ImageUpload `form:"-"`
}

// AdFormFrom pre-fills an edit form from an existing listing.
func AdFormFrom(l Listing) AdForm {
	f := AdForm{
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Location:    l.Location,
	}
	if l.Age != nil {
		f.Age = strconv.Itoa(*l.Age)
	}
	if l.Phone != nil {
		f.Phone = *l.Phone
	}
	if l.WhatsApp != nil {
		f.WhatsApp = *l.WhatsApp
	}
	return f
}

// ParseOptionalInt parses an optional whole number. An empty (or blank)
// string yields nil; anything else must be a valid integer.
func ParseOptionalInt(raw string) (*int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
