package fountain

// sampleNeighbors draws d distinct indices from [0, k) using repeated draws
// with rejection. This is sufficient (rather than a reservoir scheme)
// because d <= k and in practice d << k for all but the smallest sessions;
// per spec §4.3, d == k is special-cased to avoid pathological rejection
// rates when nearly every index must be chosen.
func sampleNeighbors(p *prng, d, k int) []int {
	if d >= k {
		all := make([]int, k)
		for i := range all {
			all[i] = i
		}
		return all
	}

	chosen := make(map[int]struct{}, d)
	indices := make([]int, 0, d)
	for len(indices) < d {
		i := p.intn(k)
		if _, seen := chosen[i]; seen {
			continue
		}
		chosen[i] = struct{}{}
		indices = append(indices, i)
	}
	return indices
}
