package domain

import "time"

// ManifestRow is a single row in the passenger manifest export.
// It is a flat, denormalized view: one row per ticket, with trip fields
// repeated for every ticket on that trip. Trips with no tickets yield one row
// with zero values for all ticket fields.
type ManifestRow struct {
	// Trip fields, repeated for every ticket on the trip.
	TripID        string
	TripStatus    TripStatus
	Train         string
	Origin        string
	Destination   string
	RealDeparture time.Time
	RealArrival   time.Time

	// Ticket fields, zero values when the trip has no tickets.
	TicketID     string
	Passenger    string
	TicketStatus TicketStatus
}
