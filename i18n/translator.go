package i18n

import (
	"fmt"
	"strings"
)

// Translator resolves keys of a single ressource in a single locale.
type Translator struct {
	t         translation
	locale    string
	ressource string
	registry  *TranslationRegistry
}

// Registry returns the translation registry the Translator was created from
func (t *Translator) Registry() *TranslationRegistry {
	return t.registry
}

// T retrieves the translation for the supplied key, missing keys
// render as a marker instead of failing.
func (t *Translator) T(key ...string) string {
	k := strings.Join(key, ".")
	res := t.t[k]
	if res == nil {
		return fmt.Sprintf("missing (%s): %s", t.locale, k)
	}
	buffer := new(strings.Builder)
	if err := res.Execute(buffer, t); err != nil {
		return fmt.Sprintf("error (%s): %s", t.locale, k)
	}
	return buffer.String()
}
