package core

// Approximate road distances in miles from the city centre. They are static
// and only used to rank and penalise departure airports.
var knownCityAirports = map[string][]Airport{
	"london": {
		{Code: "LHR", Name: "London Heathrow", DistanceMiles: 15},
		{Code: "LGW", Name: "London Gatwick", DistanceMiles: 28},
		{Code: "STN", Name: "London Stansted", DistanceMiles: 35},
		{Code: "LTN", Name: "London Luton", DistanceMiles: 32},
		{Code: "LCY", Name: "London City", DistanceMiles: 7},
		{Code: "SEN", Name: "London Southend", DistanceMiles: 40},
	},
	"manchester": {
		{Code: "MAN", Name: "Manchester", DistanceMiles: 9},
		{Code: "LPL", Name: "Liverpool John Lennon", DistanceMiles: 38},
		{Code: "LBA", Name: "Leeds Bradford", DistanceMiles: 50},
		{Code: "EMA", Name: "East Midlands", DistanceMiles: 75},
	},
	"leeds": {
		{Code: "LBA", Name: "Leeds Bradford", DistanceMiles: 8},
		{Code: "MAN", Name: "Manchester", DistanceMiles: 50},
		{Code: "DSA", Name: "Doncaster Sheffield", DistanceMiles: 35},
		{Code: "NCL", Name: "Newcastle", DistanceMiles: 95},
		{Code: "EMA", Name: "East Midlands", DistanceMiles: 70},
	},
	"birmingham": {
		{Code: "BHX", Name: "Birmingham", DistanceMiles: 8},
		{Code: "EMA", Name: "East Midlands", DistanceMiles: 40},
		{Code: "MAN", Name: "Manchester", DistanceMiles: 85},
		{Code: "BRS", Name: "Bristol", DistanceMiles: 90},
	},
	"bristol": {
		{Code: "BRS", Name: "Bristol", DistanceMiles: 8},
		{Code: "CWL", Name: "Cardiff", DistanceMiles: 45},
		{Code: "EXT", Name: "Exeter", DistanceMiles: 80},
		{Code: "BHX", Name: "Birmingham", DistanceMiles: 90},
	},
	"edinburgh": {
		{Code: "EDI", Name: "Edinburgh", DistanceMiles: 8},
		{Code: "GLA", Name: "Glasgow", DistanceMiles: 45},
		{Code: "PIK", Name: "Glasgow Prestwick", DistanceMiles: 75},
		{Code: "ABZ", Name: "Aberdeen", DistanceMiles: 125},
	},
	"glasgow": {
		{Code: "GLA", Name: "Glasgow", DistanceMiles: 9},
		{Code: "PIK", Name: "Glasgow Prestwick", DistanceMiles: 32},
		{Code: "EDI", Name: "Edinburgh", DistanceMiles: 40},
	},
	"dublin": {
		{Code: "DUB", Name: "Dublin", DistanceMiles: 7},
		{Code: "BFS", Name: "Belfast International", DistanceMiles: 100},
		{Code: "SNN", Name: "Shannon", DistanceMiles: 140},
	},
	"paris": {
		{Code: "CDG", Name: "Paris Charles de Gaulle", DistanceMiles: 16},
		{Code: "ORY", Name: "Paris Orly", DistanceMiles: 11},
		{Code: "BVA", Name: "Paris Beauvais", DistanceMiles: 53},
	},
	"new york": {
		{Code: "JFK", Name: "New York JFK", DistanceMiles: 16},
		{Code: "LGA", Name: "New York LaGuardia", DistanceMiles: 9},
		{Code: "EWR", Name: "Newark Liberty", DistanceMiles: 16},
		{Code: "HPN", Name: "Westchester County", DistanceMiles: 33},
	},
	"boston": {
		{Code: "BOS", Name: "Boston Logan", DistanceMiles: 4},
		{Code: "PVD", Name: "Providence", DistanceMiles: 60},
		{Code: "MHT", Name: "Manchester Boston", DistanceMiles: 55},
	},
	"berlin": {
		{Code: "BER", Name: "Berlin Brandenburg", DistanceMiles: 17},
	},
	"amsterdam": {
		{Code: "AMS", Name: "Amsterdam Schiphol", DistanceMiles: 11},
		{Code: "RTM", Name: "Rotterdam The Hague", DistanceMiles: 45},
		{Code: "EIN", Name: "Eindhoven", DistanceMiles: 75},
	},
	"madrid": {
		{Code: "MAD", Name: "Madrid Barajas", DistanceMiles: 8},
	},
	"rome": {
		{Code: "FCO", Name: "Rome Fiumicino", DistanceMiles: 19},
		{Code: "CIA", Name: "Rome Ciampino", DistanceMiles: 9},
	},
	"milan": {
		{Code: "MXP", Name: "Milan Malpensa", DistanceMiles: 31},
		{Code: "LIN", Name: "Milan Linate", DistanceMiles: 5},
		{Code: "BGY", Name: "Milan Bergamo", DistanceMiles: 30},
	},
	"tokyo": {
		{Code: "HND", Name: "Tokyo Haneda", DistanceMiles: 9},
		{Code: "NRT", Name: "Tokyo Narita", DistanceMiles: 40},
	},
	"dubai": {
		{Code: "DXB", Name: "Dubai International", DistanceMiles: 3},
		{Code: "DWC", Name: "Dubai World Central", DistanceMiles: 23},
		{Code: "SHJ", Name: "Sharjah", DistanceMiles: 10},
	},
}

// KnownCityAirports returns a copy of the predefined airports for a city.
func KnownCityAirports(city string) ([]Airport, bool) {
	airports, ok := knownCityAirports[normalizeCity(city)]
	if !ok {
		return nil, false
	}
	out := make([]Airport, len(airports))
	copy(out, airports)
	return out, true
}
