package analysis

import (
	"github.com/rewired-gh/linkedlens/internal/cyclic"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/narrative"
)

func timeOfDay(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	if len(events) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	bands := cyclic.TimeOfDay(events)
	best := bands[0]
	for _, b := range bands[1:] {
		if b.Count > best.Count {
			best = b
		}
	}

	out := env.narrate(nil, narrative.TopicTimeOfDay, narrative.TierAny, narrative.Facts{
		"Band":  env.Format.Band(best.Band),
		"Count": env.Format.Number(best.Count),
	})
	return bands, out, nil
}

func heatmap(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	if len(events) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	h := cyclic.BuildHeatmap(events)
	day, _ := h.BusiestDay()
	band, _ := h.BusiestBand()

	out := env.narrate(nil, narrative.TopicHeatmap, narrative.TierAny, narrative.Facts{
		"Day":  env.Format.Weekday(day),
		"Band": env.Format.Band(band),
	})
	return h, out, nil
}

func seasonality(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	if len(events) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	months := cyclic.Seasonality(events)
	best := months[0]
	for _, m := range months[1:] {
		if m.Count > best.Count {
			best = m
		}
	}

	out := env.narrate(nil, narrative.TopicSeasonality, narrative.TierAny, narrative.Facts{
		"Month": env.Format.MonthName(best.Month),
		"Count": env.Format.Number(best.Count),
	})
	return months, out, nil
}
