package itinerary

import "github.com/julianstephens/flamday/internal/models"

// Fixed locations around Flåm
var (
	FlamDock            = models.Coordinate{Lat: 60.8638, Lng: 7.1187}
	FlamStation         = models.Coordinate{Lat: 60.8632, Lng: 7.1145}
	Myrdal              = models.Coordinate{Lat: 60.7353, Lng: 7.1226}
	AegirPub            = models.Coordinate{Lat: 60.8638, Lng: 7.1172}
	Gudvangen           = models.Coordinate{Lat: 60.8812, Lng: 6.8413}
	StegasteinViewpoint = models.Coordinate{Lat: 60.9085, Lng: 7.2123}
	VisitorCenter       = models.Coordinate{Lat: 60.8622, Lng: 7.1115}
)

func coord(c models.Coordinate) *models.Coordinate {
	return &c
}

var activities = []models.Activity{
	{
		ID:           "1",
		Title:        "Desembarque y Orientación",
		StartTime:    "07:00",
		EndTime:      "07:20",
		LocationName: "Muelle de Cruceros",
		Coords:       FlamDock,
		Description:  "Flåm estará casi vacío. El aire de la mañana es fresco y el agua como un espejo.",
		KeyDetails:   "Aprovecha para sacar fotos del barco y el fiordo en la luz de la mañana.",
		Type:         models.CategoryLogistics,
		Notes:        "Webcam disponible",
	},
	{
		ID:              "2",
		Title:           "El Tren (Flåmsbana)",
		StartTime:       "07:30",
		EndTime:         "09:30",
		LocationName:    "Estación de Flåm",
		EndLocationName: "Estación Myrdal",
		Coords:          FlamStation,
		EndCoords:       coord(Myrdal),
		Description:     "Considerado uno de los viajes en tren más bonitos del mundo. Sube a 867m.",
		KeyDetails:      "Prioridad: ¡Toma el primer tren! Asientos: Izquierda subida, derecha bajada.",
		PriceNOK:        750,
		PriceEUR:        65,
		Type:            models.CategoryTransport,
		Notes:           "Parada en cascada Kjosfossen",
	},
	{
		ID:           "3",
		Title:        "Almuerzo en Ægir BrewPub",
		StartTime:    "10:00",
		EndTime:      "11:30",
		LocationName: "Ægir BrewPub",
		Coords:       AegirPub,
		Description:  "Edificio inspirado en mitología nórdica. Chimenea central de 9 metros.",
		KeyDetails:   "¡Tiempo para el festín! El pub abre antes en días de crucero.",
		PriceNOK:     500,
		PriceEUR:     43,
		Type:         models.CategoryFood,
	},
	{
		ID:              "4",
		Title:           "Fjord Cruise + Bus",
		StartTime:       "12:00",
		EndTime:         "14:30",
		LocationName:    "Puerto Flåm",
		EndLocationName: "Gudvangen",
		Coords:          FlamDock,
		EndCoords:       coord(Gudvangen),
		Description:     "Navegarás por el Nærøyfjord (UNESCO). Parte más estrecha y espectacular.",
		KeyDetails:      "Logística: Salida barco eléctrico 12:00. Regreso en bus (shuttle incluido).",
		PriceNOK:        1100,
		PriceEUR:        95,
		Type:            models.CategorySightseeing,
	},
	{
		ID:              "5",
		Title:           "Mirador Stegastein",
		StartTime:       "15:00",
		EndTime:         "16:30",
		LocationName:    "Parada Bus Flåm",
		EndLocationName: "Mirador Stegastein",
		Coords:          FlamStation,
		EndCoords:       coord(StegasteinViewpoint),
		Description:     "Plataforma que sobresale 30m de la montaña a 650m sobre el fiordo.",
		KeyDetails:      "Toma el bus a las 15:00. Vistas espectaculares.",
		PriceNOK:        410,
		PriceEUR:        36,
		Type:            models.CategorySightseeing,
	},
	{
		ID:           "6",
		Title:        "Compras y Relax",
		StartTime:    "16:30",
		EndTime:      "17:00",
		LocationName: "Centro de Visitantes",
		Coords:       VisitorCenter,
		Description:  "Tiendas de souvenirs con suéteres de lana y artesanías.",
		KeyDetails:   "Último café. Estás a pasos del muelle.",
		Type:         models.CategoryShopping,
	},
	{
		ID:           "7",
		Title:        "Regreso al Barco",
		StartTime:    "17:00",
		EndTime:      "17:30",
		LocationName: "Muelle",
		Coords:       FlamDock,
		Description:  "Hora límite de embarque 17:30.",
		KeyDetails:   "Debes estar en el muelle a las 17:00.",
		Type:         models.CategoryLogistics,
		Notes:        models.CriticalNote,
	},
}

var pronunciations = []models.Pronunciation{
	{Word: "Flåm", Phonetic: "/floːm/", Simplified: "FLOUM", Meaning: "Llanura pequeña entre montañas"},
	{Word: "Flåmsbana", Phonetic: "/flɔmsbɑːnɑ/", Simplified: "FLOM-baana", Meaning: "Tren de Flåm"},
	{Word: "Myrdal", Phonetic: "/myːrdɑl/", Simplified: "MÜR-dal", Meaning: "Valle pantanoso"},
	{Word: "Ægir", Phonetic: "/ˈɛːjiɾ/", Simplified: "ÉG-uir", Meaning: "Gigante del mar (Mitología)"},
	{Word: "Nærøyfjord", Phonetic: "/ˈnɛːrœɪfjɔr/", Simplified: "NEHR-oy-fiuord", Meaning: "Fiordo estrecho"},
	{Word: "Stegastein", Phonetic: "/ˈstɛgɑstɑɪn/", Simplified: "STÉ-ga-stain", Meaning: "Piedra del sendero"},
	{Word: "Gudvangen", Phonetic: "/ˈgʉdʋɑŋən/", Simplified: "GÜD-vang-en", Meaning: "Campo de los dioses"},
}

// Default returns a fresh copy of the static itinerary. The copy is safe to mutate.
func Default() []models.Activity {
	return Clone(activities)
}

// Pronunciations returns the static pronunciation guide
func Pronunciations() []models.Pronunciation {
	out := make([]models.Pronunciation, len(pronunciations))
	copy(out, pronunciations)
	return out
}
