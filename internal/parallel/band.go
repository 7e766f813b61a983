package parallel

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.End - b.Start
}

// SplitRows divides rows into at most parts contiguous bands of nearly equal
// height, in top-to-bottom order. It returns nil when there is nothing to split.
func SplitRows(rows, parts int) []Band {
	if rows <= 0 {
		return nil
	}
	parts = min(max(parts, 1), rows)

	bands := make([]Band, 0, parts)
	base, extra := rows/parts, rows%parts
	start := 0
	for i := range parts {
		h := base
		if i < extra {
			h++
		}
		bands = append(bands, Band{Start: start, End: start + h})
		start += h
	}
	return bands
}

// ForEachBand runs fn once per band on the pool and waits for completion.
// Bands are disjoint, so fn may write its rows without synchronization.
func (p *WorkerPool) ForEachBand(rows, parts int, fn func(Band)) {
	bands := SplitRows(rows, parts)
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b) }
	}
	p.ExecuteAll(jobs)
}
