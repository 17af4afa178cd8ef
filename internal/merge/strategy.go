package merge

// Discovery is the phase-1 strategy: it walks the merged stream far enough
// to learn, for every queue, how many of its elements rank strictly before
// the page (skip) and how many fall inside it (keep). It never materializes
// the page itself.
type Discovery[T any] struct {
	from    int // global ranks <= from are before the page
	upTo    int // stop once the global rank reaches upTo
	rank    int // ranks are 1-based: the first selection has rank 1
	windows []Window
}

// NewDiscovery creates a discovery pass over n queues for the page covering
// global ranks (from, upTo].
func NewDiscovery[T any](n, from, upTo int) *Discovery[T] {
	return &Discovery[T]{
		from:    from,
		upTo:    upTo,
		windows: make([]Window, n),
	}
}

// Update counts one unit of global rank and attributes the step to every
// queue that advanced: into skip while the rank is still before the page,
// into keep once inside it.
func (d *Discovery[T]) Update(_ T, advanced []int) {
	d.rank++
	for _, qi := range advanced {
		if d.rank <= d.from {
			d.windows[qi].IncSkip()
		} else {
			d.windows[qi].IncKeep()
		}
	}
}

// Done reports whether the page boundary has been passed.
func (d *Discovery[T]) Done() bool { return d.rank >= d.upTo }

// Windows returns the per-queue windows accumulated so far. The slice is
// indexed like the queues handed to Run.
func (d *Discovery[T]) Windows() []Window { return d.windows }

// Assembly is the phase-2 strategy: it concatenates selected elements in
// merge order until the page is full.
type Assembly[T any] struct {
	upTo int
	out  []T
}

// NewAssembly creates an assembly pass that stops after upTo elements.
func NewAssembly[T any](upTo int) *Assembly[T] {
	return &Assembly[T]{
		upTo: upTo,
		out:  make([]T, 0, upTo),
	}
}

// Update appends the selected element to the page.
func (a *Assembly[T]) Update(selected T, _ []int) {
	a.out = append(a.out, selected)
}

// Done reports whether the page is full.
func (a *Assembly[T]) Done() bool { return len(a.out) >= a.upTo }

// Page returns the assembled, globally ordered page.
func (a *Assembly[T]) Page() []T { return a.out }
