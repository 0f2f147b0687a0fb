// Package jobs contains background processors that run alongside the HTTP
// server. The booking status processor applies time-driven booking
// transitions (planned to active at start, active to completed at end) on a
// fixed interval so bookings advance without user interaction.
package jobs
