package places

import (
	"github.com/paulmach/orb"

	"smartroute/internal/i18n"
)

// DefaultAreas returns the city areas with local routing support.
func DefaultAreas() []Area {
	return []Area{
		{
			Name:  "Dar es Salaam",
			Bound: orb.Bound{Min: orb.Point{39.1, -6.9}, Max: orb.Point{39.4, -6.7}},
			Landmarks: []Landmark{
				{Name: "Kariakoo Market", Kind: "market", Position: orb.Point{39.2694, -6.8161}},
				{Name: "Muhimbili Hospital", Kind: "hospital", Position: orb.Point{39.2083, -6.7924}},
				{Name: "Ubungo Bus Terminal", Kind: "bus_station", Position: orb.Point{39.2583, -6.7824}},
				{Name: "University of Dar es Salaam", Kind: "school", Position: orb.Point{39.2083, -6.7724}},
			},
		},
		{
			Name:  "Mbeya",
			Bound: orb.Bound{Min: orb.Point{33.4, -8.95}, Max: orb.Point{33.5, -8.85}},
			Landmarks: []Landmark{
				{Name: "Mbeya Central Market", Kind: "market", Position: orb.Point{33.4606, -8.9194}},
				{Name: "Mbeya Referral Hospital", Kind: "hospital", Position: orb.Point{33.4506, -8.9094}},
				{Name: "Uyole Bus Stand", Kind: "bus_station", Position: orb.Point{33.4506, -8.9194}},
			},
		},
	}
}

// DefaultPlaces returns the popular destinations offered by the picker.
func DefaultPlaces() []Place {
	return []Place{
		{Name: i18n.Text{SW: "Kituo cha Jiji Dar es Salaam", EN: "Dar es Salaam City Center"}, Category: City, Lat: -6.7924, Lng: 39.2083},
		{Name: i18n.Text{SW: "Soko la Kariakoo", EN: "Kariakoo Market"}, Category: Market, Lat: -6.8161, Lng: 39.2694},
		{Name: i18n.Text{SW: "Uwanja wa Ndege Dar es Salaam", EN: "Dar es Salaam Airport"}, Category: Transport, Lat: -6.8781, Lng: 39.2026},
		{Name: i18n.Text{SW: "Kituo cha Basi Ubungo", EN: "Ubungo Bus Terminal"}, Category: Transport, Lat: -6.7833, Lng: 39.2667},
		{Name: i18n.Text{SW: "Chuo Kikuu cha Dar es Salaam", EN: "University of Dar es Salaam"}, Category: Education, Lat: -6.7749, Lng: 39.2352},
		{Name: i18n.Text{SW: "Hospitali ya Muhimbili", EN: "Muhimbili Hospital"}, Category: Hospital, Lat: -6.8007, Lng: 39.2608},
		{Name: i18n.Text{SW: "Jiji la Mbeya", EN: "Mbeya City"}, Category: City, Lat: -8.9094, Lng: 33.4606},
		{Name: i18n.Text{SW: "Jiji la Arusha", EN: "Arusha City"}, Category: City, Lat: -3.3869, Lng: 36.6830},
		{Name: i18n.Text{SW: "Jiji la Dodoma", EN: "Dodoma City"}, Category: City, Lat: -6.1630, Lng: 35.7516},
		{Name: i18n.Text{SW: "Jiji la Mwanza", EN: "Mwanza City"}, Category: City, Lat: -2.5164, Lng: 32.9175},
		{Name: i18n.Text{SW: "Jiji la Tanga", EN: "Tanga City"}, Category: City, Lat: -5.0692, Lng: 39.0962},
		{Name: i18n.Text{SW: "Jiji la Morogoro", EN: "Morogoro City"}, Category: City, Lat: -6.8235, Lng: 37.6536},
		{Name: i18n.Text{SW: "Soko la Mwenge", EN: "Mwenge Market"}, Category: Market, Lat: -6.7500, Lng: 39.2200},
		{Name: i18n.Text{SW: "Mlimani City Mall", EN: "Mlimani City Mall"}, Category: Shopping, Lat: -6.7700, Lng: 39.2300},
		{Name: i18n.Text{SW: "Slipway Shopping Centre", EN: "Slipway Shopping Centre"}, Category: Shopping, Lat: -6.8000, Lng: 39.2700},
		{Name: i18n.Text{SW: "Kivukoni Fish Market", EN: "Kivukoni Fish Market"}, Category: Market, Lat: -6.8200, Lng: 39.2900},
	}
}
