package antitear

// rowChanged implements the row-change predicate of spec.md §4.5.1: slide a
// window of cfg.WindowLength pixels across row rowIdx with stride
// cfg.StepSize, comparing the per-channel sum of R, G, B between newPixels
// and prevPixels at each window position. A window counts as changed if
// any channel's absolute sum-difference exceeds WindowLength*Threshold. The
// row is classified new once cfg.MatchesRequired windows have counted as
// changed.
//
// Pixels are 32-bit BGRA, matching the runtime format assumed throughout
// the core (frame.FormatBGRA32): byte 0 is blue, 1 is green, 2 is red.
func rowChanged(cfg Config, rowIdx, width uint32, newPixels, prevPixels []byte) bool {
	const bpp = 4
	rowOffset := rowIdx * width * bpp

	changeThreshold := int64(cfg.WindowLength) * int64(cfg.Threshold)
	var matches uint32
	var x uint32

	for x+cfg.WindowLength < width {
		var oldR, oldG, oldB int64
		var newR, newG, newB int64

		for w := uint32(0); w < cfg.WindowLength; w++ {
			idx := rowOffset + (x+w)*bpp
			oldB += int64(prevPixels[idx+0])
			oldG += int64(prevPixels[idx+1])
			oldR += int64(prevPixels[idx+2])

			newB += int64(newPixels[idx+0])
			newG += int64(newPixels[idx+1])
			newR += int64(newPixels[idx+2])
		}

		if abs64(oldR-newR) > changeThreshold || abs64(oldG-newG) > changeThreshold || abs64(oldB-newB) > changeThreshold {
			matches++
			if matches >= cfg.MatchesRequired {
				return true
			}
		}

		x += cfg.StepSize
	}

	return false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
