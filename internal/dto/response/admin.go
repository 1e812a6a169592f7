package response

type SummaryResponse struct {
	Capacity        int     `json:"capacity"`
	SeatsUsed       int     `json:"seats_used"`
	SeatsAvailable  int     `json:"seats_available"`
	TotalBookings   int     `json:"total_bookings"`
	PaidBookings    int     `json:"paid_bookings"`
	PendingBookings int     `json:"pending_bookings"`
	WaitlistEntries int     `json:"waitlist_entries"`
	WaitlistTickets int     `json:"waitlist_tickets"`
	AmountExpected  float64 `json:"amount_expected"`
	AmountCollected float64 `json:"amount_collected"`
}

type RestoreResponse struct {
	ArchivedAs string `json:"archived_as"`
	Records    int    `json:"records"`
}
