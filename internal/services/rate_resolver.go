package services

import (
	"github.com/shopspring/decimal"

	"retainer-tracker/internal/domain"
)

// RateSource identifies where an effective hourly rate came from.
type RateSource string

const (
	RateSourceEntry   RateSource = "entry"
	RateSourceProject RateSource = "project"
	RateSourceClient  RateSource = "client"
	RateSourceNone    RateSource = "none"
)

// RateResolution is an effective hourly rate plus its provenance. Source is
// RateSourceNone when no rate applies; the entry is then informational only.
type RateResolution struct {
	Rate   decimal.Decimal
	Source RateSource
}

type rateResolver struct {
	source  RateSource
	resolve func() *decimal.Decimal
}

// ResolveRate walks the precedence chain entry override, project rate, client
// default, returning the first defined value with its provenance tag. The
// order is fixed; every place that renders an amount goes through here.
func ResolveRate(entry *domain.TimeEntry, project *domain.Project, client *domain.Client) RateResolution {
	resolvers := []rateResolver{
		{RateSourceEntry, func() *decimal.Decimal {
			if entry == nil {
				return nil
			}
			return entry.RateOverride
		}},
		{RateSourceProject, func() *decimal.Decimal {
			if project == nil {
				return nil
			}
			return project.HourlyRate
		}},
		{RateSourceClient, func() *decimal.Decimal {
			if client == nil {
				return nil
			}
			return client.DefaultRate
		}},
	}

	for _, r := range resolvers {
		if rate := r.resolve(); rate != nil {
			return RateResolution{Rate: *rate, Source: r.source}
		}
	}
	return RateResolution{Source: RateSourceNone}
}
