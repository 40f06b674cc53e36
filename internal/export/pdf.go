// Package export renders invoices as downloadable documents. Renderers are
// pure: they take already-fetched data and return the file bytes.
package export

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// InvoiceDocument bundles everything a rendered invoice needs.
type InvoiceDocument struct {
	Invoice  domain.Invoice
	Items    []domain.InvoiceItem
	Client   domain.Client
	Template *domain.InvoiceTemplate
	Currency string
}

// RenderPDF renders the invoice as an A4 PDF.
func RenderPDF(doc InvoiceDocument) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	headerText := "INVOICE"
	footerText := ""
	if doc.Template != nil {
		if doc.Template.HeaderText != "" {
			headerText = doc.Template.HeaderText
		}
		footerText = doc.Template.FooterText
	}

	m.RegisterHeader(func() {
		m.Row(12, func() {
			m.Col(12, func() {
				m.Text(headerText, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(doc.Invoice.InvoiceNumber, props.Text{
					Top:   2,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	m.Row(8, func() {
		m.Col(6, func() {
			m.Text("Billed to: "+doc.Client.Name, props.Text{Top: 2, Size: 10})
		})
		m.Col(6, func() {
			m.Text("Issued: "+doc.Invoice.DateIssued.Format("2006-01-02"), props.Text{Top: 2, Size: 10, Align: consts.Right})
		})
	})
	m.Row(8, func() {
		m.Col(6, func() {
			m.Text(doc.Client.Address, props.Text{Top: 1, Size: 9})
		})
		m.Col(6, func() {
			m.Text("Due: "+doc.Invoice.DueDate.Format("2006-01-02"), props.Text{Top: 1, Size: 10, Align: consts.Right})
		})
	})
	m.Row(6, func() {})

	headers := []string{"Description", "Qty", "Unit Price", "Total"}
	rows := make([][]string, 0, len(doc.Items))
	for _, it := range doc.Items {
		rows = append(rows, []string{
			it.Description,
			it.Quantity.String(),
			money(doc.Currency, it.UnitPrice.StringFixed(2)),
			money(doc.Currency, it.Total.StringFixed(2)),
		})
	}

	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{6, 2, 2, 2},
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{6, 2, 2, 2},
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("Subtotal: "+money(doc.Currency, doc.Invoice.Subtotal.StringFixed(2)), props.Text{
				Top:   3,
				Align: consts.Right,
				Size:  10,
			})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("Tax: "+money(doc.Currency, doc.Invoice.Tax.StringFixed(2)), props.Text{
				Top:   1,
				Align: consts.Right,
				Size:  10,
			})
		})
	})
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Total: "+money(doc.Currency, doc.Invoice.Total.StringFixed(2)), props.Text{
				Top:   2,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	if doc.Invoice.Notes != "" {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Notes: "+doc.Invoice.Notes, props.Text{Top: 4, Size: 9})
			})
		})
	}
	if doc.Template != nil && doc.Template.PaymentTerms != "" {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Payment terms: "+doc.Template.PaymentTerms, props.Text{Top: 2, Size: 9})
			})
		})
	}
	if footerText != "" {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(footerText, props.Text{Top: 4, Size: 9, Align: consts.Center})
			})
		})
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(currency, amount string) string {
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}
