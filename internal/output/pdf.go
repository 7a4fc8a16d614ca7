package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/fairtrip/fairtrip/internal/core"
)

var strategyTitles = map[core.StrategyID]string{
	core.StrategyCheapest: "Cheapest overall",
	core.StrategyFairest:  "Fairest split",
	core.StrategyBalanced: "Best balance",
}

// WritePlanPDF renders a trip plan as an A4 report: one section per
// combination with a row per traveler.
func WritePlanPDF(w io.Writer, plan *core.TripPlan) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("FairTrip plan "+plan.Destination, false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, "FairTrip", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	dates := plan.DepartureDate
	if plan.ReturnDate != "" {
		dates += " to " + plan.ReturnDate
	}
	pdf.CellFormat(170, 6, tr(fmt.Sprintf("Group trip to %s, %s", plan.Destination, dates)), "", 1, "L", false, 0, "")

	pdf.SetY(36)
	pdf.SetTextColor(0, 0, 0)

	if len(plan.Combinations) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(170, 6, "No flight combinations were found for this group.", "", "L", false)
	}

	for _, c := range plan.Combinations {
		title := strategyTitles[c.ID]
		if title == "" {
			title = string(c.ID)
		}
		if c.Recommended {
			title += "  (recommended)"
		}
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(85, 7, fmt.Sprintf("Total: %s", money(c.TotalCost, c.Currency)), "", 0, "L", false, 0, "")
		pdf.CellFormat(85, 7, fmt.Sprintf("Fairness: %d/100", c.Fairness.Score), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 238, 242)
		for _, h := range []struct {
			label string
			width float64
		}{{"Traveler", 40}, {"Airport", 55}, {"Flight", 30}, {"Cost", 22}, {"vs avg", 23}} {
			pdf.CellFormat(h.width, 6, h.label, "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for i, s := range c.Selections {
			var diff float64
			if i < len(c.Fairness.PerTraveler) {
				diff = c.Fairness.PerTraveler[i].DiffFromAvg
			}
			pdf.CellFormat(40, 6, tr(s.TravelerName), "", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, tr(s.Offer.DepartureAirport.Label()), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, flightLabel(s.Offer.FlightOffer), "", 0, "L", false, 0, "")
			pdf.CellFormat(22, 6, money(s.Offer.PriceTotal, s.Offer.Currency), "", 0, "L", false, 0, "")
			pdf.CellFormat(23, 6, fmt.Sprintf("%+.0f", diff), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(plan.Unsearchable) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(130, 90, 20)
		pdf.MultiCell(170, 5, tr(fmt.Sprintf("No flights found for: %s", strings.Join(plan.Unsearchable, ", "))), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(170, 4, "Prices are estimates at search time and are not a booking confirmation.", "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func flightLabel(o core.FlightOffer) string {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return o.Source
	}
	s := o.Itineraries[0].Segments[0]
	label := s.CarrierCode + s.FlightNumber
	if stops := o.MaxStops(); stops > 0 {
		label += fmt.Sprintf(" +%d", stops)
	}
	return label
}
