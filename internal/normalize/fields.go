package normalize

// Alias tables: canonical field name to the source keys the backend has been
// seen to use, in priority order. The canonical name always comes first.
// This is the only place naming drift is absorbed.

var airportFields = fieldTable{
	"code":    {"code", "airportCode", "airport_code", "iata"},
	"name":    {"name", "airportName", "airport_name"},
	"city":    {"city", "cityName", "city_name"},
	"country": {"country", "countryName", "country_name"},
}

var flightFields = fieldTable{
	"id":             {"id", "flightId", "flight_id", "_id"},
	"flightNumber":   {"flightNumber", "flight_number", "flightNo", "flight_no"},
	"origin":         {"origin", "origin_airport", "originAirport"},
	"destination":    {"destination", "destination_airport", "destinationAirport"},
	"departureTime":  {"departureTime", "departure_time"},
	"arrivalTime":    {"arrivalTime", "arrival_time"},
	"duration":       {"duration", "duration_minutes", "durationMinutes"},
	"cabinClass":     {"cabinClass", "cabin_class"},
	"cabinClassId":   {"cabinClassId", "cabin_class_id"},
	"price":          {"price", "price_amount", "priceAmount"},
	"availableSeats": {"availableSeats", "available_seats", "seats_available"},
	"aircraft":       {"aircraft", "aircraftType", "aircraft_type"},
}

var passengerFields = fieldTable{
	"firstName":           {"firstName", "first_name"},
	"lastName":            {"lastName", "last_name"},
	"gender":              {"gender", "title"},
	"birthDay":            {"birthDay", "birth_day"},
	"birthMonth":          {"birthMonth", "birth_month"},
	"birthYear":           {"birthYear", "birth_year"},
	"passportNumber":      {"passportNumber", "passport_number"},
	"passportCountry":     {"passportCountry", "passport_country"},
	"passportExpiryDay":   {"passportExpiryDay", "passport_expiry_day"},
	"passportExpiryMonth": {"passportExpiryMonth", "passport_expiry_month"},
	"passportExpiryYear":  {"passportExpiryYear", "passport_expiry_year"},
}

var bookingFields = fieldTable{
	"id":               {"id", "bookingId", "booking_id", "_id"},
	"userId":           {"userId", "user_id"},
	"status":           {"status", "bookingStatus", "booking_status"},
	"outboundFlight":   {"outboundFlight", "outbound_flight"},
	"returnFlight":     {"returnFlight", "return_flight"},
	"outboundFlightId": {"outboundFlightId", "outbound_flight_id"},
	"returnFlightId":   {"returnFlightId", "return_flight_id"},
	"passengers":       {"passengers"},
	"contactEmail":     {"contactEmail", "contact_email"},
	"contactPhone":     {"contactPhone", "contact_phone"},
	"totalPrice":       {"totalPrice", "total_price"},
	"bookingDate":      {"bookingDate", "booking_date"},
	"cabinClass":       {"cabinClass", "cabin_class"},
	"cabinClassId":     {"cabinClassId", "cabin_class_id"},
	"flights":          {"flights"},
}

// embeddedFlightsFields describes the "flights" block a booking may carry.
var embeddedFlightsFields = fieldTable{
	"outbound":     {"outbound"},
	"return":       {"return"},
	"cabinClass":   {"cabinClass", "cabin_class"},
	"cabinClassId": {"cabinClassId", "cabin_class_id"},
}
