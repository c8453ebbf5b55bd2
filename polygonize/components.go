package polygonize

// offsets4 are the 4-connected neighbour moves as (dRow, dCol).
var offsets4 = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// label assigns every foreground cell of mask a 1-based region id by
// breadth-first search over 4-neighbours. Background cells get 0.
// It returns the label slice (row-major) and the number of regions.
//
// Time:   O(rows·cols).
// Memory: O(rows·cols) for labels and the queue.
func label(mask []uint8, rows, cols int) ([]int, int) {
	labels := make([]int, len(mask))
	n := 0
	queue := make([]int, 0, 64)

	for i0, v := range mask {
		if v == 0 || labels[i0] != 0 {
			continue
		}
		n++
		labels[i0] = n
		queue = append(queue[:0], i0)
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ur, uc := u/cols, u%cols
			for _, d := range offsets4 {
				vr, vc := ur+d[0], uc+d[1]
				if vr < 0 || vr >= rows || vc < 0 || vc >= cols {
					continue
				}
				vi := vr*cols + vc
				if mask[vi] == 0 || labels[vi] != 0 {
					continue
				}
				labels[vi] = n
				queue = append(queue, vi)
			}
		}
	}

	return labels, n
}
