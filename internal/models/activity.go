package models

// Category tags an activity with one of a fixed set of kinds
type Category string

const (
	CategoryTransport   Category = "transport"
	CategoryFood        Category = "food"
	CategorySightseeing Category = "sightseeing"
	CategoryShopping    Category = "shopping"
	CategoryLogistics   Category = "logistics"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryTransport,
	CategoryFood,
	CategorySightseeing,
	CategoryShopping,
	CategoryLogistics,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CriticalNote marks an activity that must not be missed
const CriticalNote = "CRITICAL"

// Activity is one scheduled itinerary item. Completed is the only field
// that changes after load.
type Activity struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	StartTime       string      `json:"startTime"` // HH:MM format
	EndTime         string      `json:"endTime"`   // HH:MM format
	LocationName    string      `json:"locationName"`
	EndLocationName string      `json:"endLocationName,omitempty"`
	Coords          Coordinate  `json:"coords"`
	EndCoords       *Coordinate `json:"endCoords,omitempty"`
	Description     string      `json:"description"`
	KeyDetails      string      `json:"keyDetails"`
	PriceNOK        int         `json:"priceNOK"`
	PriceEUR        int         `json:"priceEUR"`
	Type            Category    `json:"type"`
	Completed       bool        `json:"completed"`
	Notes           string      `json:"notes,omitempty"`
}

// Critical reports whether the activity carries the critical marker
func (a Activity) Critical() bool {
	return a.Notes == CriticalNote
}

// Moves reports whether the activity takes the user to a different place
func (a Activity) Moves() bool {
	return a.EndCoords != nil
}

// Pronunciation is a static guide entry for a local word
type Pronunciation struct {
	Word       string `json:"word"`
	Phonetic   string `json:"phonetic"`
	Simplified string `json:"simplified"`
	Meaning    string `json:"meaning"`
}
