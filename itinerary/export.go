package itinerary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"tabi/config"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// GET /api/itinerary/export.pdf
// One page per day, with a share QR pointing at the app on the last page.
// TODO: embed a UTF-8 font; the core fonts drop CJK item titles.
func ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	days, err := FetchAll(ctx)
	if err != nil {
		http.Error(w, "Error fetching itinerary", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Itinerary", true)

	for _, day := range days {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d - %s", day.Day, day.Date))
		pdf.Ln(12)

		pdf.SetFont("Arial", "", 11)
		for _, item := range day.Items {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 7, fmt.Sprintf("%s  [%s]  %s", item.Time, item.Category, item.Title))
			pdf.Ln(6)
			if item.Description != "" {
				pdf.SetFont("Arial", "", 10)
				pdf.MultiCell(0, 5, item.Description, "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	if url := config.Cfg.PublicURL; url != "" {
		qrPNG, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err == nil {
			pdf.AddPage()
			pdf.SetFont("Arial", "B", 14)
			pdf.Cell(0, 10, "Open the live itinerary")
			pdf.Ln(14)
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("shareqr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("shareqr", 75, 60, 60, 60, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	w.Write(buf.Bytes())
}
