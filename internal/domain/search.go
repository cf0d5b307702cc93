package domain

type TripType string

const (
	TripTypeOneWay    TripType = "ONE_WAY"
	TripTypeRoundTrip TripType = "ROUND_TRIP"
)

type SearchRequest struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate,omitempty"`
	CabinClass    CabinClass `json:"cabinClass"`
	Passengers    int        `json:"passengers"`
	TripType      TripType   `json:"tripType"`
}

// SearchResponse carries both legs; Return is nil for one-way searches.
type SearchResponse struct {
	Outbound []Flight `json:"outbound"`
	Return   []Flight `json:"return"`
}
