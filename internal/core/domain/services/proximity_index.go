package services

import (
	"sort"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
)

// Candidate is a worker paired with its distance to the ranking target.
type Candidate struct {
	Worker     *worker.Worker
	DistanceKm float64
}

// ProximityIndex ranks online workers by distance to a target point.
//
// Distance is the haversine great-circle distance (kernel.GeoPoint.DistanceTo).
// Ties are broken by the worker id's canonical string, so two co-located
// workers always come back in the same order.
//
// Example usage:
//
//	ranked, err := services.NewProximityIndex().Nearest(jobLocation, online)
//	if err != nil {
//	    return err
//	}
//	for _, c := range ranked {
//	    // try c.Worker, nearest first
//	}
type ProximityIndex struct{}

func NewProximityIndex() ProximityIndex {
	return ProximityIndex{}
}

// Nearest returns the eligible candidates ordered by ascending distance to target.
//
// Workers that are offline or have no location are skipped. The result is a
// fresh slice; candidates and the workers in it are left untouched. An empty
// input yields an empty, non-nil result.
func (p ProximityIndex) Nearest(target kernel.GeoPoint, candidates []*worker.Worker) ([]Candidate, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]Candidate, 0, len(candidates))
	for _, w := range candidates {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if !w.IsEligible() {
			continue
		}

		d, err := target.DistanceTo(*w.Location())
		if err != nil {
			return nil, err
		}

		ranked = append(ranked, Candidate{Worker: w, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Worker.ID().String() < ranked[j].Worker.ID().String()
	})

	return ranked, nil
}
