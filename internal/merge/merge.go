package merge

// Strategy receives the per-step bookkeeping of a k-way merge. The traversal
// is shared; what a pass does with each selected element is not. Run calls
// Update exactly once per step, however many queues advanced on a tie.
type Strategy[T any] interface {
	// Update is invoked with the element selected this step and the indices
	// of every queue that advanced (all queues whose head compared equal to
	// the selection). The indices slice is reused between steps and must not
	// be retained.
	Update(selected T, advanced []int)

	// Done reports whether the merge should stop before the next step.
	Done() bool
}

// Run performs a k-way merge over queues, each individually sorted ascending
// by cmp. One step selects the minimum head across all non-empty queues,
// advances every queue whose head compares equal to it, and hands the
// selection to the strategy. Records that compare equal are treated as one
// logical element; that is what deduplicates replicas of the same record
// living on different shards.
//
// Run returns when the strategy reports done or every queue is exhausted.
func Run[T any](queues [][]T, cmp func(a, b T) int, strat Strategy[T]) {
	heads := make([]int, len(queues))
	advanced := make([]int, 0, len(queues))

	for !strat.Done() {
		// Find the queue with the smallest head. N is the shard count, so a
		// linear scan beats a heap for every realistic configuration.
		best := -1
		for i, q := range queues {
			if heads[i] >= len(q) {
				continue
			}
			if best < 0 || cmp(q[heads[i]], queues[best][heads[best]]) < 0 {
				best = i
			}
		}
		if best < 0 {
			return // all queues exhausted
		}

		selected := queues[best][heads[best]]

		// Advance every queue whose head ties with the selection, the
		// selected queue included.
		advanced = advanced[:0]
		for i, q := range queues {
			if heads[i] < len(q) && cmp(q[heads[i]], selected) == 0 {
				advanced = append(advanced, i)
				heads[i]++
			}
		}

		strat.Update(selected, advanced)
	}
}
