package game

// NextTarget draws from src in [0, count) up to maxAttempts times and returns
// the first draw that differs from previous. If every draw equals previous,
// the last draw is returned anyway, so a repeat is possible with probability
// (1/count)^maxAttempts. With maxAttempts == 0 it returns 0 without drawing.
func NextTarget(src Source, count, previous, maxAttempts uint8) uint8 {
	var next uint8
	for i := uint8(0); i < maxAttempts; i++ {
		next = uint8(src.Intn(int(count)))
		if next != previous {
			break
		}
	}
	return next
}
