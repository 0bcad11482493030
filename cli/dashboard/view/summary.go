package view

import (
	"math"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/types"
)

// RecentAlertsWindow окно, в котором событие считается свежим
const RecentAlertsWindow = time.Hour

// Summary сводка по парку
type Summary struct {
	Total         int
	Online        int
	Offline       int
	Unknown       int
	Moving        int
	OnlinePercent int
	RecentAlerts  int
}

func Summarize(devices map[int64]types.Device, positions map[int64]types.Position, events []types.Event, now time.Time) Summary {
	s := Summary{Total: len(devices)}

	for _, d := range devices {
		switch d.Status {
		case types.StatusOnline:
			s.Online++
		case types.StatusOffline:
			s.Offline++
		case types.StatusUnknown:
			s.Unknown++
		}
	}

	for _, p := range positions {
		if p.Moving() {
			s.Moving++
		}
	}

	since := now.Add(-RecentAlertsWindow)
	for _, e := range events {
		if e.EventTime.After(since) {
			s.RecentAlerts++
		}
	}

	if s.Total > 0 {
		s.OnlinePercent = int(math.Round(float64(s.Online) / float64(s.Total) * 100))
	}
	return s
}
