package entity

// InterestEntry is one row of the separately maintained interest form
// export. The registry is read-only: it caps how many seats the declaring
// email may book, it is never written by this service.
type InterestEntry struct {
	Timestamp    string
	ParentName   string
	Email        string
	ChildClass   string
	ChildTickets int
	AdultTickets int
	// TotalTickets is derived on load as ChildTickets+AdultTickets.
	TotalTickets int
}
