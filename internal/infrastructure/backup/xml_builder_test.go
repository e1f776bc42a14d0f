package backup

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbackup "github.com/essaghir/stock-ledger-api/internal/application/backup"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

func sampleExportData() *appbackup.ExportData {
	createdAt := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	line := &entity.ProductLine{
		ID:            "line-1",
		UserProductID: "lot-1",
		Name:          "Tomates",
		CategoryKey:   "legumes",
		CategoryLabel: "Légumes (خضروات)",
		Quality:       4,
		UnitPrice:     decimal.NewFromFloat(2.5),
		Unite:         "kg",
		InitialStock:  decimal.NewFromInt(100),
		CurrentStock:  decimal.NewFromInt(70),
		MinStock:      decimal.NewFromInt(20),
		CreatedAt:     createdAt,
	}
	mov := &entity.StockMovement{
		ID:            "mov-1",
		ProductLineID: "line-1",
		UserProductID: "lot-1",
		Type:          entity.MovementTypeOUT,
		Quantity:      decimal.NewFromInt(30),
		PreviousStock: decimal.NewFromInt(100),
		NewStock:      decimal.NewFromInt(70),
		Reason:        "Préparation des repas",
		CreatedBy:     "user-1",
		CreatedAt:     createdAt.Add(2 * time.Hour),
	}
	return &appbackup.ExportData{
		User:        &entity.User{ID: "user-1", Email: "chef@cantine.fr", Name: "Chef"},
		GeneratedAt: time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
		Lots: []*appbackup.LotExport{
			{Lot: &entity.UserProduct{ID: "lot-1", UserID: "user-1", Name: "Livraison mars", CreatedAt: createdAt}, Lines: []*entity.ProductLine{line}},
		},
		Movements: []*entity.StockMovement{mov},
	}
}

func TestBuild_EstructuraDelXML(t *testing.T) {
	builder := NewEtreeExportBuilder()

	xmlBytes, digest, err := builder.Build(sampleExportData())
	require.NoError(t, err)
	require.NotEmpty(t, xmlBytes)
	assert.Len(t, digest, 64, "digest SHA-256 en hex")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(xmlBytes))

	root := doc.SelectElement("stockLedgerExport")
	require.NotNil(t, root)
	assert.Equal(t, "1.0", root.SelectAttrValue("version", ""))
	assert.Equal(t, "2024-03-11T12:00:00Z", root.SelectAttrValue("generatedAt", ""))
	assert.Empty(t, root.SelectAttrValue("truncated", ""), "sin tope no se marca truncated")

	user := root.SelectElement("user")
	require.NotNil(t, user)
	assert.Equal(t, "chef@cantine.fr", user.SelectAttrValue("email", ""))

	lots := root.SelectElement("userProducts")
	require.NotNil(t, lots)
	assert.Equal(t, "1", lots.SelectAttrValue("count", ""))
	lot := lots.SelectElement("userProduct")
	require.NotNil(t, lot)
	assert.Equal(t, "Livraison mars", lot.SelectAttrValue("name", ""))

	line := lot.SelectElement("productLine")
	require.NotNil(t, line)
	assert.Equal(t, "Légumes (خضروات)", line.SelectAttrValue("category", ""))
	assert.Equal(t, "legumes", line.SelectAttrValue("categoryKey", ""))
	assert.Equal(t, "70", line.SelectAttrValue("currentStock", ""))

	movs := root.SelectElement("stockMovements")
	require.NotNil(t, movs)
	assert.Equal(t, "1", movs.SelectAttrValue("count", ""))
	mov := movs.SelectElement("stockMovement")
	require.NotNil(t, mov)
	assert.Equal(t, "OUT", mov.SelectAttrValue("type", ""))
	assert.Equal(t, "100", mov.SelectAttrValue("previousStock", ""))
	assert.Equal(t, "70", mov.SelectAttrValue("newStock", ""))
}

func TestBuild_DigestDeterminista(t *testing.T) {
	builder := NewEtreeExportBuilder()

	xml1, digest1, err := builder.Build(sampleExportData())
	require.NoError(t, err)
	xml2, digest2, err := builder.Build(sampleExportData())
	require.NoError(t, err)

	assert.Equal(t, xml1, xml2, "misma entrada produce el mismo XML")
	assert.Equal(t, digest1, digest2, "misma entrada produce el mismo digest")
}

func TestBuild_MarcaTruncated(t *testing.T) {
	builder := NewEtreeExportBuilder()
	data := sampleExportData()
	data.Truncated = true

	xmlBytes, _, err := builder.Build(data)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(xmlBytes))
	assert.Equal(t, "true", doc.SelectElement("stockLedgerExport").SelectAttrValue("truncated", ""))
}
