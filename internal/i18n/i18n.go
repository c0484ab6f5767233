// Package i18n provides the flat translation catalogs consumed by the
// preview renderer and the document layout engine.
package i18n

const defaultLanguage = "en"

// Translator resolves label keys for one language. Lookup never
// fails: a missing key falls back to the English catalog and then to
// the raw key itself.
type Translator struct {
	catalog  map[string]string
	fallback map[string]string
}

// New returns a translator for the given language code. Unknown
// codes resolve to English.
func New(lang string) Translator {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs[defaultLanguage]
	}
	return Translator{catalog: catalog, fallback: catalogs[defaultLanguage]}
}

// T resolves a label key.
func (tr Translator) T(key string) string {
	if v, ok := tr.catalog[key]; ok {
		return v
	}
	if v, ok := tr.fallback[key]; ok {
		return v
	}
	return key
}

// Languages lists the available language codes.
func Languages() []string {
	return []string{"en", "es", "de", "fr"}
}

// Supported reports whether a catalog exists for the language code.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}
