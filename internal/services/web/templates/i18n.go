package templates

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Localizer translates catalog keys for the components in this package.
// *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T translates key with loc. Without a localizer, or when the translation
// comes back blank, a string key is used as the format string.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		if translated := loc.Sprintf(key, args...); strings.TrimSpace(translated) != "" {
			return translated
		}
	}
	keyString, ok := key.(string)
	if !ok {
		return ""
	}
	if len(args) == 0 {
		return keyString
	}
	return fmt.Sprintf(keyString, args...)
}
