package repo

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// paginate slices an already filtered result and reports the unpaginated total.
func paginate[T any](filtered []T, offset, limit *int) ([]T, int) {
	total := len(filtered)

	// If offset is greater than the number of filtered items, return empty slice
	if offset != nil && *offset > total {
		return []T{}, total
	}

	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}

	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}

	return filtered[start:end], total
}
