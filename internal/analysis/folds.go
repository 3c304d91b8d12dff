// Package analysis provides post-run inspection of traced branches.
//
// The main entry point is [Folds], which locates turning points in the
// parameter history of a branch: indices where lambda reaches a local
// extremum, i.e. where the branch turned back.
package analysis

// Fold is one turning point found on a branch.
type Fold struct {
	// Index into the branch history of the extremal point.
	Index int
	// Lmbda at the extremum.
	Lmbda float64
	// Max is true for a local maximum of lambda, false for a minimum.
	Max bool
}

// Folds scans the parameter history of a branch for sign changes of the
// lambda increment. Plateaus (exactly repeated lambda values) are skipped,
// not counted as extrema.
func Folds(lmbdas []float64) []Fold {
	var folds []Fold
	prevSign := 0
	for i := 1; i < len(lmbdas); i++ {
		d := lmbdas[i] - lmbdas[i-1]
		sign := 0
		if d > 0 {
			sign = 1
		} else if d < 0 {
			sign = -1
		}
		if sign == 0 {
			continue
		}
		if prevSign != 0 && sign != prevSign {
			folds = append(folds, Fold{
				Index: i - 1,
				Lmbda: lmbdas[i-1],
				Max:   prevSign > 0,
			})
		}
		prevSign = sign
	}
	return folds
}

// LmbdaRange returns the smallest and largest parameter value on the branch.
func LmbdaRange(lmbdas []float64) (min, max float64) {
	if len(lmbdas) == 0 {
		return 0, 0
	}
	min, max = lmbdas[0], lmbdas[0]
	for _, l := range lmbdas[1:] {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}
	return min, max
}
