package assessor

import (
	"strings"

	"riskd/internal/domain"
	"riskd/internal/geo"
	"riskd/pkg/config"
)

// Location flags transactions from places the user has not been seen before.
// Skipped entirely when the transaction carries no location.
type Location struct {
	knownLimit        int
	highRiskCountries map[string]bool
}

func NewLocation(cfg config.RiskConfig) *Location {
	countries := make(map[string]bool, len(cfg.HighRiskCountries))
	for _, c := range cfg.HighRiskCountries {
		countries[strings.ToUpper(c)] = true
	}
	return &Location{
		knownLimit:        cfg.KnownLocationLimit,
		highRiskCountries: countries,
	}
}

func (l *Location) Name() string { return "location" }

func (l *Location) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	if tx.Location == nil {
		return Result{}
	}

	// Transactions are ordered newest first, so the first locations found
	// are the most recent sightings.
	known := make([]domain.GeoPoint, 0, l.knownLimit)
	for _, t := range snap.Transactions {
		if t.Location == nil {
			continue
		}
		known = append(known, *t.Location)
		if len(known) == l.knownLimit {
			break
		}
	}

	unusual := true
	for _, k := range known {
		if geo.Similar(*tx.Location, k) {
			unusual = false
			break
		}
	}

	return evaluate([]rule{
		{
			weight: 25,
			reason: "Transaction from unusual location",
			match:  func() bool { return unusual },
		},
		{
			weight: 30,
			reason: "Transaction from high-risk geographic area",
			match: func() bool {
				return unusual && l.highRiskCountries[strings.ToUpper(tx.Location.Country)]
			},
		},
	})
}
