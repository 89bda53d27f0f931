package app

// View is one of the four screens of the day companion
type View int

const (
	ViewTimeline View = iota
	ViewMap
	ViewBudget
	ViewGuide
)

var views = []View{ViewTimeline, ViewMap, ViewBudget, ViewGuide}

// Views lists every view in tab order
func Views() []View {
	return append([]View(nil), views...)
}

func (v View) String() string {
	switch v {
	case ViewTimeline:
		return "Itinerario"
	case ViewMap:
		return "Mapa"
	case ViewBudget:
		return "Gastos"
	case ViewGuide:
		return "Guía"
	default:
		return "Desconocido"
	}
}

func (v View) Valid() bool {
	return v >= ViewTimeline && v <= ViewGuide
}

func (v View) Next() View {
	return views[(int(v)+1)%len(views)]
}

func (v View) Prev() View {
	return views[(int(v)+len(views)-1)%len(views)]
}
