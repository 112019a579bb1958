// core/seed/seed.go
package seed

import "fmt"

// Strategy selects how seed start offsets are spaced and how the tail of a
// sequence is handled. The set is closed; new policies get a new constant.
type Strategy int

const (
	// Overlapping emits a seed at every offset (step 1).
	Overlapping Strategy = iota
	// NonOverlapping emits disjoint seeds (step k); a partial tail shorter
	// than k is dropped.
	NonOverlapping
	// GreedyNonOverlapping is NonOverlapping except the final seed is
	// re-aligned to end at the last character, so the whole sequence is
	// covered at the cost of the last two seeds possibly overlapping.
	GreedyNonOverlapping
)

func (s Strategy) String() string {
	switch s {
	case Overlapping:
		return "overlapping"
	case NonOverlapping:
		return "non-overlapping"
	case GreedyNonOverlapping:
		return "greedy"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a CLI spelling to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "overlapping":
		return Overlapping, nil
	case "non-overlapping":
		return NonOverlapping, nil
	case "greedy":
		return GreedyNonOverlapping, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want overlapping | non-overlapping | greedy)", s)
	}
}

// Generate extracts every seed of length k from seqs under the given
// strategy. Seeds keep source order: sequence by sequence, left to right.
// Sequences shorter than k contribute nothing. The call is pure; identical
// inputs always yield identical output.
func Generate(seqs []string, k int, strategy Strategy) ([]string, error) {
	if k < 1 {
		return nil, fmt.Errorf("seed length must be >= 1, got %d", k)
	}
	switch strategy {
	case Overlapping:
		return stepped(seqs, k, 1), nil
	case NonOverlapping:
		return stepped(seqs, k, k), nil
	case GreedyNonOverlapping:
		return greedy(seqs, k), nil
	default:
		return nil, fmt.Errorf("unknown strategy %v", strategy)
	}
}

// GenerateStep is the general stepped form: seeds start at offsets
// 0, step, 2*step, ... Overlapping and NonOverlapping are its step=1 and
// step=k instances.
func GenerateStep(seqs []string, k, step int) ([]string, error) {
	if k < 1 {
		return nil, fmt.Errorf("seed length must be >= 1, got %d", k)
	}
	if step < 1 {
		return nil, fmt.Errorf("step must be >= 1, got %d", step)
	}
	return stepped(seqs, k, step), nil
}

func stepped(seqs []string, k, step int) []string {
	var seeds []string
	for _, s := range seqs {
		for i := 0; i+k <= len(s); i += step {
			seeds = append(seeds, s[i:i+k])
		}
	}
	return seeds
}

// greedy walks in steps of k but stops before the tail, then emits one final
// seed ending exactly at the last character. When len(s) is a multiple of k
// that final seed is just the last block; otherwise it overlaps its
// predecessor by k - len(s)%k characters.
func greedy(seqs []string, k int) []string {
	var seeds []string
	for _, s := range seqs {
		if len(s) < k {
			continue
		}
		last := len(s) - k
		for i := 0; i < last; i += k {
			seeds = append(seeds, s[i:i+k])
		}
		seeds = append(seeds, s[last:])
	}
	return seeds
}
