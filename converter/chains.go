package converter

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

type chainKey struct {
	personIndex int
	vacationID  string
}

// groupChains splits trips into one chain per (person, vacation). Chains
// are ordered by person, then by first appearance of the vacation.
func groupChains(records []tripRecord) [][]tripRecord {
	index := make(map[chainKey]int)
	var chains [][]tripRecord
	for _, rec := range records {
		key := chainKey{personIndex: rec.personIndex, vacationID: rec.VacationID}
		i, ok := index[key]
		if !ok {
			i = len(chains)
			index[key] = i
			chains = append(chains, nil)
		}
		chains[i] = append(chains[i], rec)
	}
	sort.SliceStable(chains, func(a, b int) bool {
		return chains[a][0].personIndex < chains[b][0].personIndex
	})
	return chains
}

// reconstructChains orders each chain by trip number and derives the
// chain-position fields. Chains are disjoint and processed concurrently.
func reconstructChains(ctx context.Context, chains [][]tripRecord, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range chains {
		chain := chains[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			orderChain(chain)
			linkChain(chain)
			return nil
		})
	}
	return g.Wait()
}

// orderChain sorts by OLDI; trips without a number keep file order after
// the numbered ones.
func orderChain(chain []tripRecord) {
	sort.SliceStable(chain, func(a, b int) bool {
		ra, rb := chain[a], chain[b]
		if ra.hasSequence != rb.hasSequence {
			return ra.hasSequence
		}
		if ra.hasSequence && ra.sequence != rb.sequence {
			return ra.sequence < rb.sequence
		}
		return ra.order < rb.order
	})
}

// linkChain sets first/last flags, preceding purpose and activity duration
// on an ordered chain.
func linkChain(chain []tripRecord) {
	for i := range chain {
		t := &chain[i].Trip
		t.IsFirstTrip = i == 0
		t.IsLastTrip = i == len(chain)-1
		if t.IsFirstTrip {
			t.PrecedingPurpose = survey.PurposeHome
		} else {
			t.PrecedingPurpose = chain[i-1].FollowingPurpose
		}
		if t.IsLastTrip {
			t.ActivityDuration = math.NaN()
		} else {
			t.ActivityDuration = chain[i+1].DepartureTime - t.ArrivalTime
		}
	}
}
