package merge

// Window describes the subrange of one shard's phase-1 result list that
// belongs to the requested page: skip that many elements, then keep that
// many. Windows start at zero and only ever grow by single increments during
// window discovery; they live for one query round and are not shared across
// goroutines.
type Window struct {
	Skip int `json:"skip"`
	Keep int `json:"keep"`
}

// IncSkip adds one element to the skipped prefix and returns the new count.
func (w *Window) IncSkip() int {
	w.Skip++
	return w.Skip
}

// IncKeep adds one element to the kept range and returns the new count.
func (w *Window) IncKeep() int {
	w.Keep++
	return w.Keep
}

// Len returns the total number of elements the window covers.
func (w Window) Len() int { return w.Skip + w.Keep }
