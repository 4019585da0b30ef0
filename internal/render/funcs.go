package render

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// TimeAgo renders the coarse relative age used on ad cards: under an hour
// is "Just now", under a day is hours, anything older is days.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	hours := int(now.Sub(t) / time.Hour)
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", hours/24)
	}
}

// WhatsAppLink builds a wa.me link from a free-form number by keeping only
// its digits.  It returns "" when no digit remains.
func WhatsAppLink(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + b.String()
}

// TelLink builds a tel: URL.  html/template rejects unknown schemes in
// attributes, so the value is marked safe after stripping everything but
// digits and a leading plus.
func TelLink(number string) template.URL {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}

func funcMap(imageURL func(string) string, now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"timeAgo":      func(t time.Time) string { return TimeAgo(t, now()) },
		"whatsappLink": WhatsAppLink,
		"telLink":      TelLink,
		"imageURL": func(p *string) string {
			if p == nil {
				return ""
			}
			return imageURL(*p)
		},
		"str": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"intp": func(p *int) string {
			if p == nil {
				return ""
			}
			return strconv.Itoa(*p)
		},
		"year": func() int { return now().Year() },
	}
}
