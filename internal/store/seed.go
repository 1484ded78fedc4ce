package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"timetrack/internal/core"
)

// SeedOwnerKeys are the roster keys the synthetic dataset is generated for.
var SeedOwnerKeys = []string{"1", "2", "3"}

// SeedEntries builds the demo dataset: for each of the 30 days ending at
// now, 2-4 entries per owner with random categories and 1-4 whole hours.
// The shape is deterministic, the values are not.
func SeedEntries(now time.Time, owners []string) []core.TimeEntry {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	mains := core.MainCategories()
	createdAt := now.UTC().Format(time.RFC3339)

	var entries []core.TimeEntry
	for i := 0; i < 30; i++ {
		date := now.AddDate(0, 0, -i).Format(core.DateLayout)
		for _, owner := range owners {
			perDay := rng.Intn(3) + 2
			for j := 0; j < perDay; j++ {
				main := mains[rng.Intn(len(mains))]
				subs := core.Subcategories(main)
				entries = append(entries, core.TimeEntry{
					Key:          uuid.NewString(),
					OwnerKey:     owner,
					Date:         date,
					Hours:        float64(rng.Intn(4) + 1),
					Description:  fmt.Sprintf("Demo entry %d for %s", j+1, date),
					MainCategory: main,
					SubCategory:  subs[rng.Intn(len(subs))],
					CreatedAt:    createdAt,
				})
			}
		}
	}
	return entries
}
