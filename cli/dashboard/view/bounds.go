package view

import "github.com/daniil11ru/visla/cli/dashboard/types"

// FocusZoom масштаб карты при центрировании на выбранном устройстве
const FocusZoom = 16

type Point struct {
	Latitude  float64
	Longitude float64
}

// Box прямоугольник, охватывающий все известные позиции
type Box struct {
	South float64
	West  float64
	North float64
	East  float64
}

func Center(p types.Position) Point {
	return Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

func Bounds(positions map[int64]types.Position) (Box, bool) {
	if len(positions) == 0 {
		return Box{}, false
	}

	first := true
	var box Box
	for _, p := range positions {
		if first {
			box = Box{South: p.Latitude, North: p.Latitude, West: p.Longitude, East: p.Longitude}
			first = false
			continue
		}
		if p.Latitude < box.South {
			box.South = p.Latitude
		}
		if p.Latitude > box.North {
			box.North = p.Latitude
		}
		if p.Longitude < box.West {
			box.West = p.Longitude
		}
		if p.Longitude > box.East {
			box.East = p.Longitude
		}
	}
	return box, true
}
