package home

import (
	"net/http"
	"time"

	"tabi/config"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
)

// Countdown is the time remaining until departure, floored to whole units.
type Countdown struct {
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Departed bool `json:"departed"`
}

// CountdownTo computes the header countdown against local midnight of the
// departure date. A past date reads as departed with both fields at zero.
func CountdownTo(startDate string, now time.Time) Countdown {
	depart, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
	if err != nil {
		return Countdown{Departed: true}
	}

	diff := depart.Sub(now)
	if diff <= 0 {
		return Countdown{Departed: true}
	}
	return Countdown{
		Days:  int(diff.Hours()) / 24,
		Hours: int(diff.Hours()) % 24,
	}
}

// weatherCard and rateCard are static placeholders until a data feed is
// wired; the client renders them as-is.
func weatherCard() utils.M {
	return utils.M{
		"city":      "那霸市",
		"tempC":     28,
		"condition": "晴朗多雲",
	}
}

func rateCard() utils.M {
	return utils.M{
		"pair":   "JPY/TWD",
		"rate":   0.214,
		"change": "▼ 0.15%",
	}
}

// GET /api/home/summary
func GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	startDate := ""
	if config.Cfg != nil {
		startDate = config.Cfg.TripStartDate
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"title":     "Okinawa 2026",
		"subtitle":  "Family Trip Planning",
		"countdown": CountdownTo(startDate, time.Now()),
		"weather":   weatherCard(),
		"rate":      rateCard(),
	})
}

// GET /api/config
// The public subset only; keys and connection strings never leave the server.
func GetPublicConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg := config.Cfg
	if cfg == nil {
		cfg = &config.App{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"tripStartDate": cfg.TripStartDate,
		"demoMode":      cfg.DemoMode,
		"aiEnabled":     cfg.GeminiAPIKey != "",
	})
}
