// Package htmlpdf оборачивает wkhtmltopdf для конвертации HTML-разметки
// в PDF-документ с фиксированными настройками страницы: цветной режим,
// портретная ориентация, формат A4, верхнее поле 10.
package htmlpdf

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Renderer конвертирует HTML в PDF. Вызов синхронный, генератор
// создается на каждый вызов, общего состояния нет.
type Renderer struct{}

// New создает новый Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render принимает UTF-8 строку с HTML и возвращает байты PDF-документа.
func (r *Renderer) Render(_ context.Context, html string) ([]byte, error) {
	const op = "htmlpdf.Render"

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pdfg.Grayscale.Set(false)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(10)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pdfg.Bytes(), nil
}
