package listing

// EllipsisMarker stands in for a collapsed run of pages inside a pagination
// window.
const EllipsisMarker = -1

// Window returns the page indicators to render for a pager on page current
// out of total. With seven or fewer pages every index appears. Beyond that
// the window keeps the first and last page plus current and its immediate
// neighbors, collapsing each gap to a single EllipsisMarker.
func Window(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if current < 0 {
		current = 0
	}
	if current > total-1 {
		current = total - 1
	}

	if total <= 7 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}

	keep := map[int]bool{
		0:         true,
		total - 1: true,
		current:   true,
	}
	if current-1 >= 0 {
		keep[current-1] = true
	}
	if current+1 <= total-1 {
		keep[current+1] = true
	}

	out := make([]int, 0, 7)
	last := -1
	for i := 0; i < total; i++ {
		if !keep[i] {
			continue
		}
		if last >= 0 && i-last > 1 {
			out = append(out, EllipsisMarker)
		}
		out = append(out, i)
		last = i
	}
	return out
}
