// Package handler: export.go implements GET /export.
// Returns the passenger manifest as a flat table, one row per ticket.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/train-reservation/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_status", "train", "origin", "destination",
	"real_departure", "real_arrival",
	"ticket_id", "passenger", "ticket_status",
}

// ManifestRow is the JSON representation of one manifest row.
// Ticket fields are omitted for trips without tickets.
type ManifestRow struct {
	TripID        string              `json:"trip_id"`
	TripStatus    domain.TripStatus   `json:"trip_status"`
	Train         string              `json:"train"`
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	RealDeparture time.Time           `json:"real_departure"`
	RealArrival   time.Time           `json:"real_arrival"`
	TicketID      string              `json:"ticket_id,omitempty"`
	Passenger     string              `json:"passenger,omitempty"`
	TicketStatus  domain.TicketStatus `json:"ticket_status,omitempty"`
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows := s.reservations.Manifest()

	switch r.URL.Query().Get("format") {
	case "", "json":
		out := make([]ManifestRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, s.manifestRowToResponse(row))
		}
		writeJSON(w, http.StatusOK, out)
	case "csv":
		s.writeCSV(w, rows)
	default:
		badRequest(w, "format must be one of: json, csv")
	}
}

// writeCSV encodes rows as CSV into a buffer first so Content-Length is known.
func (s *Server) writeCSV(w http.ResponseWriter, rows []domain.ManifestRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(s.manifestRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) manifestRowToResponse(r domain.ManifestRow) ManifestRow {
	return ManifestRow{
		TripID:        r.TripID,
		TripStatus:    r.TripStatus,
		Train:         r.Train,
		Origin:        r.Origin,
		Destination:   r.Destination,
		RealDeparture: r.RealDeparture.In(s.loc),
		RealArrival:   r.RealArrival.In(s.loc),
		TicketID:      r.TicketID,
		Passenger:     r.Passenger,
		TicketStatus:  r.TicketStatus,
	}
}

// manifestRowToCSVRecord encodes a row as a flat string slice.
// Empty ticket fields stay empty strings.
func (s *Server) manifestRowToCSVRecord(r domain.ManifestRow) []string {
	return []string{
		r.TripID,
		string(r.TripStatus),
		r.Train,
		r.Origin,
		r.Destination,
		r.RealDeparture.In(s.loc).Format(time.RFC3339),
		r.RealArrival.In(s.loc).Format(time.RFC3339),
		r.TicketID,
		r.Passenger,
		string(r.TicketStatus),
	}
}
