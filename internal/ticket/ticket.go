// Package ticket renders printable PDF tickets for orders.
package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/phpdave11/gofpdf"
)

// Filename returns the download name for an order's ticket.
func Filename(order *domain.OrderDetails) string {
	return fmt.Sprintf("ticket_%s.pdf", order.ID)
}

func Render(order *domain.OrderDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Movie Ticket", false)
	pdf.SetAuthor("sturdy-octo-happiness", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MOVIE TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, safe(order.Title, "-"), "", "", false)
	pdf.Ln(2)

	showTime := order.SelectedDate.Format(domain.DateLayout)
	if order.SelectedTime != "" {
		showTime += " " + order.SelectedTime
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order      : %s", order.ID),
		fmt.Sprintf("Name       : %s", safe(order.UserName, "-")),
		fmt.Sprintf("Email      : %s", safe(order.UserEmail, "-")),
		fmt.Sprintf("Theater    : %s", safe(order.TheaterName, "-")),
		fmt.Sprintf("Show time  : %s", showTime),
		fmt.Sprintf("Seats      : %s", strings.Join(order.Seats, ", ")),
		fmt.Sprintf("Total paid : %s %s", order.Price.StringFixed(2), domain.DefaultCurrency),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket at the entrance. One admission per listed seat.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
