package core

import (
	"slices"
	"strings"
)

// Destination is an entry of the built-in catalogue offered on the
// destination ranking screen.
type Destination struct {
	Code      string   `json:"code" yaml:"code"`
	City      string   `json:"city" yaml:"city"`
	TripTypes []string `json:"tripTypes" yaml:"tripTypes"`
}

var destinationCatalogue = []Destination{
	{Code: "BCN", City: "Barcelona", TripTypes: []string{"beach", "city", "nightlife"}},
	{Code: "LIS", City: "Lisbon", TripTypes: []string{"city", "beach", "culture"}},
	{Code: "AMS", City: "Amsterdam", TripTypes: []string{"city", "nightlife", "culture"}},
	{Code: "PRG", City: "Prague", TripTypes: []string{"city", "culture", "budget"}},
	{Code: "BUD", City: "Budapest", TripTypes: []string{"city", "nightlife", "budget"}},
	{Code: "KRK", City: "Krakow", TripTypes: []string{"city", "culture", "budget"}},
	{Code: "FCO", City: "Rome", TripTypes: []string{"city", "culture", "food"}},
	{Code: "CDG", City: "Paris", TripTypes: []string{"city", "culture", "food"}},
	{Code: "BER", City: "Berlin", TripTypes: []string{"city", "nightlife", "culture"}},
	{Code: "DUB", City: "Dublin", TripTypes: []string{"city", "nightlife"}},
	{Code: "EDI", City: "Edinburgh", TripTypes: []string{"city", "culture", "outdoors"}},
	{Code: "PMI", City: "Palma de Mallorca", TripTypes: []string{"beach", "outdoors"}},
	{Code: "AGP", City: "Malaga", TripTypes: []string{"beach", "food"}},
	{Code: "FAO", City: "Faro", TripTypes: []string{"beach", "outdoors"}},
	{Code: "ATH", City: "Athens", TripTypes: []string{"culture", "beach", "food"}},
	{Code: "NCE", City: "Nice", TripTypes: []string{"beach", "food"}},
	{Code: "GVA", City: "Geneva", TripTypes: []string{"ski", "outdoors"}},
	{Code: "INN", City: "Innsbruck", TripTypes: []string{"ski", "outdoors"}},
	{Code: "KEF", City: "Reykjavik", TripTypes: []string{"outdoors", "adventure"}},
	{Code: "SPU", City: "Split", TripTypes: []string{"beach", "outdoors", "nightlife"}},
}

// Catalogue returns the built-in destinations carrying tripType, or all of
// them when tripType is empty.
func Catalogue(tripType string) []Destination {
	var out []Destination
	for _, d := range destinationCatalogue {
		if tripType != "" && !slices.ContainsFunc(d.TripTypes, func(t string) bool {
			return strings.EqualFold(t, tripType)
		}) {
			continue
		}
		d.TripTypes = slices.Clone(d.TripTypes)
		out = append(out, d)
	}
	return out
}

func catalogueCity(code string) (string, bool) {
	for _, d := range destinationCatalogue {
		if strings.EqualFold(d.Code, code) {
			return d.City, true
		}
	}
	return "", false
}
