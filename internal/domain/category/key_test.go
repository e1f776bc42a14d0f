package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/essaghir/stock-ledger-api/internal/domain/category"
)

func TestKey_EtiquetaBilingue(t *testing.T) {
	assert.Equal(t, "fruits-فواكه", category.Key("Fruits (فواكه)"))
	assert.Equal(t, "legumes-خضروات", category.Key("Légumes (خضروات)"))
}

func TestKey_Acentos(t *testing.T) {
	assert.Equal(t, "epices", category.Key("Épices"))
	assert.Equal(t, "cereales", category.Key("Céréales"))
}

// Editar mayúsculas, espacios o signos de la etiqueta no cambia la clave.
func TestKey_EstableAnteEdicionesCosmeticas(t *testing.T) {
	base := category.Key("Produits Laitiers")
	assert.Equal(t, base, category.Key("  produits   laitiers "))
	assert.Equal(t, base, category.Key("PRODUITS-LAITIERS"))
}

func TestKey_Vacia(t *testing.T) {
	assert.Equal(t, "autre", category.Key(""))
	assert.Equal(t, "autre", category.Key("()---"))
}
