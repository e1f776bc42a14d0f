// Package backup serializa el inventario a XML para respaldo externo.
// El digest SHA-256 se calcula sobre el documento canonicalizado (C14N),
// de modo que reordenar atributos o cambiar el quoting no lo altera.
package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	appbackup "github.com/essaghir/stock-ledger-api/internal/application/backup"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
)

var _ appbackup.ExportBuilder = (*EtreeExportBuilder)(nil)

// EtreeExportBuilder implementa backup.ExportBuilder usando etree.
type EtreeExportBuilder struct{}

// NewEtreeExportBuilder construye el serializador.
func NewEtreeExportBuilder() *EtreeExportBuilder { return &EtreeExportBuilder{} }

// Build genera el XML del respaldo y su digest canónico (SHA-256 hex).
func (b *EtreeExportBuilder) Build(data *appbackup.ExportData) ([]byte, string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("stockLedgerExport")
	root.CreateAttr("version", "1.0")
	root.CreateAttr("generatedAt", data.GeneratedAt.Format(time.RFC3339))
	if data.Truncated {
		root.CreateAttr("truncated", "true")
	}

	userEl := root.CreateElement("user")
	userEl.CreateAttr("id", data.User.ID)
	userEl.CreateAttr("email", data.User.Email)
	userEl.CreateAttr("name", data.User.Name)

	lotsEl := root.CreateElement("userProducts")
	lotsEl.CreateAttr("count", strconv.Itoa(len(data.Lots)))
	for _, lot := range data.Lots {
		addLot(lotsEl, lot)
	}

	movsEl := root.CreateElement("stockMovements")
	movsEl.CreateAttr("count", strconv.Itoa(len(data.Movements)))
	for _, m := range data.Movements {
		addMovement(movsEl, m)
	}

	doc.Indent(2)
	xmlBytes, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("backup: serializar XML: %w", err)
	}

	digest, err := canonicalDigest(xmlBytes)
	if err != nil {
		return nil, "", fmt.Errorf("backup: digest canónico: %w", err)
	}
	return xmlBytes, digest, nil
}

func addLot(parent *etree.Element, lot *appbackup.LotExport) {
	el := parent.CreateElement("userProduct")
	el.CreateAttr("id", lot.Lot.ID)
	el.CreateAttr("name", lot.Lot.Name)
	el.CreateAttr("createdAt", lot.Lot.CreatedAt.Format(time.RFC3339))
	for _, line := range lot.Lines {
		addLine(el, line)
	}
}

func addLine(parent *etree.Element, line *entity.ProductLine) {
	el := parent.CreateElement("productLine")
	el.CreateAttr("id", line.ID)
	el.CreateAttr("name", line.Name)
	el.CreateAttr("categoryKey", line.CategoryKey)
	el.CreateAttr("category", line.CategoryLabel)
	el.CreateAttr("quality", strconv.Itoa(line.Quality))
	el.CreateAttr("unitPrice", line.UnitPrice.String())
	el.CreateAttr("unite", line.Unite)
	el.CreateAttr("initialStock", line.InitialStock.String())
	el.CreateAttr("currentStock", line.CurrentStock.String())
	el.CreateAttr("minStock", line.MinStock.String())
	el.CreateAttr("createdAt", line.CreatedAt.Format(time.RFC3339))
}

func addMovement(parent *etree.Element, m *entity.StockMovement) {
	el := parent.CreateElement("stockMovement")
	el.CreateAttr("id", m.ID)
	el.CreateAttr("productLineId", m.ProductLineID)
	el.CreateAttr("userProductId", m.UserProductID)
	el.CreateAttr("type", m.Type)
	el.CreateAttr("quantity", m.Quantity.String())
	el.CreateAttr("previousStock", m.PreviousStock.String())
	el.CreateAttr("newStock", m.NewStock.String())
	el.CreateAttr("reason", m.Reason)
	el.CreateAttr("createdBy", m.CreatedBy)
	el.CreateAttr("createdAt", m.CreatedAt.Format(time.RFC3339))
}

// canonicalDigest canonicaliza el XML (C14N) y devuelve su SHA-256 en hex.
func canonicalDigest(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
