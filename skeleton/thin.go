package skeleton

// ring8 lists the neighbours P2..P9 clockwise from north as (dRow, dCol).
var ring8 = [8][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}

// thin reduces g in place to a one-cell wide skeleton using Zhang-Suen
// thinning. It returns the number of sub-iterations performed.
func thin(g *grid) int {
	var del []int
	passes := 0
	for changed := true; changed; {
		changed = false
		for step := 0; step < 2; step++ {
			passes++
			del = del[:0]
			for r := 0; r < g.rows; r++ {
				for c := 0; c < g.cols; c++ {
					if g.cells[r*g.cols+c] == 1 && removable(g, r, c, step) {
						del = append(del, r*g.cols+c)
					}
				}
			}
			for _, i := range del {
				g.cells[i] = 0
			}
			changed = changed || len(del) > 0
		}
	}
	return passes
}

func removable(g *grid, r, c, step int) bool {
	var p [8]uint8
	n := 0
	for i, d := range ring8 {
		p[i] = g.at(r+d[0], c+d[1])
		n += int(p[i])
	}
	if n < 2 || n > 6 {
		return false
	}
	transitions := 0
	for i := 0; i < 8; i++ {
		if p[i] == 0 && p[(i+1)%8] == 1 {
			transitions++
		}
	}
	if transitions != 1 {
		return false
	}
	// p[0]=N p[2]=E p[4]=S p[6]=W
	if step == 0 {
		return p[0]*p[2]*p[4] == 0 && p[2]*p[4]*p[6] == 0
	}
	return p[0]*p[2]*p[6] == 0 && p[0]*p[4]*p[6] == 0
}
