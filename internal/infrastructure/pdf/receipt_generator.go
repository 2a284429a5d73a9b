// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del consultorio  │  N° Recibo + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONSULTORIO: Dirección / Tel / Email                       │
//	│  PACIENTE: Nombre + documento                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRATAMIENTO + método de pago + estado                      │
//	│  TABLA: Insumos utilizados (si los hay)                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGADO                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/intelguy8000/odontologia/internal/application/sales"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ sales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	sale *repository.SaleWithDetail,
	clinic *entity.ClinicConfig,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pago", true).
		WithAuthor(clinic.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, clinic))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clinicRow(clinic))
	m.AddRows(patientRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(treatmentRow(sale))

	if len(sale.Items) > 0 {
		m.AddRows(itemsHeaderRow())
		for _, r := range itemRows(sale.Items) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del consultorio (izq) y recibo + fecha (der).
func headerRow(sale *repository.SaleWithDetail, clinic *entity.ClinicConfig) core.Row {
	fecha := sale.Sale.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(clinic.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+sale.Sale.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// clinicRow: datos de contacto del consultorio.
func clinicRow(clinic *entity.ClinicConfig) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONSULTORIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(clinic.Address, "—"),
				nonEmpty(clinic.Phone, "—"),
				nonEmpty(clinic.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// patientRow: datos del paciente.
func patientRow(sale *repository.SaleWithDetail) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PACIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Documento: %s",
				sale.Patient.FullName, nonEmpty(sale.Patient.Document, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// treatmentRow: tratamiento, método de pago y estado.
func treatmentRow(sale *repository.SaleWithDetail) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Tratamiento: "+sale.Sale.Treatment, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("Método de pago: %s   |   Estado: %s",
				sale.Sale.PaymentMethod, sale.Sale.Status,
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant.", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})),
		col.New(7).Add(text.New("Insumo utilizado", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})),
		col.New(3).Add(text.New("Unidad", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1})),
	)
}

func itemRows(items []repository.SaleItemDetail) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Join.QuantityUsed), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(it.Item.Name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(it.Item.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

// totalRow: total pagado en COP.
func totalRow(sale *repository.SaleWithDetail) core.Row {
	return row.New(12).Add(
		col.New(7),
		col.New(5).Add(
			text.New("TOTAL PAGADO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(formatCOP(sale.Sale.Amount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

// formatCOP formatea pesos colombianos con punto de miles: $7.480.000
func formatCOP(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return sign + "$" + string(out)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
