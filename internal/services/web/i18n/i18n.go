// Package i18n provides locale resolution and message printing for the web
// service.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(match(tag))
}

// ResolveTag picks the best supported tag from the Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	header := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if header == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// ResolveLocalizer returns the request printer and its BCP 47 language tag
// for the html lang attribute.
func ResolveLocalizer(r *http.Request) (*message.Printer, string) {
	tag := ResolveTag(r)
	return Printer(tag), tag.String()
}

func match(tag language.Tag) language.Tag {
	_, index, _ := matcher.Match(tag)
	return supported[index]
}
