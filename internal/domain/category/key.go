// Package category deriva identificadores estables de categoría a partir de
// etiquetas visibles. Las etiquetas del origen mezclan idiomas ("Fruits (فواكه)",
// "Légumes (خضروات)"); usar la etiqueta como identidad rompe la agregación en
// cuanto alguien la edita o traduce, así que la clave se deriva una sola vez al
// crear la línea y la etiqueta queda como dato de presentación.
package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks elimina marcas combinantes tras descomposición NFD (é → e).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key deriva la clave estable de una etiqueta de categoría: minúsculas con
// plegado Unicode, sin acentos, y todo lo que no sea letra o dígito colapsado
// a un guion. "Fruits (فواكه)" → "fruits-فواكه", "Épices" → "epices".
// Una etiqueta vacía (o solo signos) produce "autre".
func Key(label string) string {
	folded := cases.Lower(language.Und).String(label)
	if s, _, err := transform.String(stripMarks, folded); err == nil {
		folded = s
	}

	var b strings.Builder
	lastHyphen := true // evita guion inicial
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	key := strings.Trim(b.String(), "-")
	if key == "" {
		return "autre"
	}
	return key
}
