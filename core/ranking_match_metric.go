package core

import (
	"cmp"
	"slices"
)

// Returns the standings of the group sorted by points and then
// by point difference, both descending.
//
// Teams that are equal in both keep their group order. No
// further tie-break is applied, see [RankingTies].
func Rankings(group Group) []TeamStats {
	stats := CreateStats(group.Teams, group.Matches)
	slices.SortStableFunc(stats, func(a, b TeamStats) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(b.Diff, a.Diff)
	})
	return stats
}

// Returns the groups of ranked teams that are equal in points
// and point difference. The order of the teams inside of a tie
// is arbitrary.
func RankingTies(stats []TeamStats) [][]TeamStats {
	ties := make([][]TeamStats, 0, 2)
	for _, rank := range rankBuckets(stats) {
		if len(rank) > 1 {
			ties = append(ties, rank)
		}
	}
	return ties
}

// Returns the ties that straddle the top n ranks. Those ties
// leave it undecided which teams qualify.
func BlockingTies(stats []TeamStats, n int) [][]TeamStats {
	blocking := make([][]TeamStats, 0, 1)
	start := 0
	for _, rank := range rankBuckets(stats) {
		end := start + len(rank)
		if len(rank) > 1 && start < n && end > n {
			blocking = append(blocking, rank)
		}
		start = end
	}
	return blocking
}

// Buckets the stats by points and then by point difference
func rankBuckets(stats []TeamStats) [][]TeamStats {
	buckets := make([][]TeamStats, 0, len(stats))
	for _, byPoints := range sortByMetric(stats, func(s TeamStats) int { return s.Points }) {
		byDiff := sortByMetric(byPoints, func(s TeamStats) int { return s.Diff })
		buckets = append(buckets, byDiff...)
	}
	return buckets
}

// Sorts the stats in descending buckets of one of the metrics returned by the getter
func sortByMetric(stats []TeamStats, getter func(s TeamStats) int) [][]TeamStats {
	buckets := make(map[int][]TeamStats)

	for _, s := range stats {
		metric := getter(s)
		buckets[metric] = append(buckets[metric], s)
	}

	sortedMetrics := make([]int, 0, len(buckets))
	for k := range buckets {
		sortedMetrics = append(sortedMetrics, k)
	}
	slices.SortFunc(sortedMetrics, func(a, b int) int { return cmp.Compare(b, a) })

	sorted := make([][]TeamStats, 0, len(sortedMetrics))
	for _, v := range sortedMetrics {
		sorted = append(sorted, buckets[v])
	}

	return sorted
}
