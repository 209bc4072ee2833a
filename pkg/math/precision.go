package math

// PrecisionScale is the factor a timestamp is multiplied by before truncation.
const PrecisionScale float32 = 100000

// PrecisionKey quantizes a timestamp into a comparable integer key.
//
// The multiply happens in float32 and the result is truncated toward zero,
// so anything past the fifth decimal digit is dropped: 0.300001 and 0.300009
// collide while 0.299999 and 0.3 do not.
func PrecisionKey(t float32) int64 {
	return int64(float32(t * PrecisionScale))
}

// Percentile returns i's position along n evenly spaced points, 0 for the
// first and 1 for the last. A single point sits at 0.
func Percentile(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// Fraction returns where t falls between from and to, clamped to [0, 1].
func Fraction(t, from, to float32) float32 {
	span := to - from
	if span == 0 {
		return 0
	}
	f := (t - from) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
