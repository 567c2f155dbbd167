// Package pdf genera la hoja de etiquetas QR de las cajas con Maroto v2.
//
// Layout de cada etiqueta (una por fila, página A4):
//
//	┌───────────────────────────────────────────────┐
//	│  ┌────────┐  CJ-POLLO-000123                  │
//	│  │   QR   │  Artículo: POLLO — Pechuga        │
//	│  │        │  Lote: L-2406   Vence: 2026-09-01 │
//	│  └────────┘  N° caja: 000123                  │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhortiz/bodega-scan-api/internal/application/labels"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

var _ labels.LabelRenderer = (*MarotoLabelRenderer)(nil)

// MarotoLabelRenderer implementa labels.LabelRenderer usando Maroto v2.
type MarotoLabelRenderer struct{}

// NewMarotoLabelRenderer construye el generador de etiquetas.
func NewMarotoLabelRenderer() *MarotoLabelRenderer { return &MarotoLabelRenderer{} }

// Render genera el PDF con una etiqueta QR por caja y devuelve sus bytes.
func (g *MarotoLabelRenderer) Render(data []labels.LabelData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiquetas de cajas", true).
		Build()

	m := maroto.New(cfg)

	for _, l := range data {
		m.AddRows(labelRow(l))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow: QR a la izquierda, datos legibles a la derecha.
func labelRow(l labels.LabelData) core.Row {
	item := l.ItemCode
	if l.ItemName != "" {
		item = l.ItemCode + " — " + l.ItemName
	}
	batch := "Lote: " + l.Batch
	if l.Expiry != "" {
		batch += "   Vence: " + l.Expiry
	}
	return row.New(42).Add(
		col.New(3).Add(
			code.NewQr(l.Code, props.Rect{Center: true, Percent: 95}),
		),
		col.New(9).Add(
			text.New(l.Code, props.Text{Style: fontstyle.Bold, Size: 12, Top: 4}),
			text.New("Artículo: "+item, props.Text{Size: 9, Top: 14, Color: colorGray}),
			text.New(batch, props.Text{Size: 9, Top: 22, Color: colorGray}),
			text.New("N° caja: "+l.BoxNumber, props.Text{Size: 9, Top: 30, Color: colorGray}),
		),
	)
}
