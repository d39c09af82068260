package chapters

import "sort"

// Segment is a chapter with a computed play length.
type Segment struct {
	Chapter
	Length int // seconds until the next chapter, or until the end of the video
}

// SplitSegments orders chapters by start offset and computes each one's
// length, the last ending at totalSeconds. Spans with a negative start or a
// non-positive length are dropped.
func SplitSegments(chs []Chapter, totalSeconds int) []Segment {
	if len(chs) == 0 {
		return nil
	}

	sorted := make([]Chapter, len(chs))
	copy(sorted, chs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Segment, 0, len(sorted))
	for i, c := range sorted {
		end := totalSeconds
		if i < len(sorted)-1 {
			end = sorted[i+1].Start
		}
		if c.Start < 0 || end <= c.Start {
			continue
		}
		out = append(out, Segment{Chapter: c, Length: end - c.Start})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
