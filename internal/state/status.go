package state

// FetchStatus tracks the request lifecycle of a fetched list.
type FetchStatus int

const (
	StatusIdle FetchStatus = iota
	StatusLoading
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// fetchedList is a list replaced wholesale by generation-tagged fetches.
// A result is accepted only while its seq and key are still current.
type fetchedList[T any] struct {
	items  []T
	status FetchStatus
	key    int
	seq    int
}

func (l *fetchedList[T]) begin(key int) int {
	l.seq++
	l.key = key
	l.status = StatusLoading
	return l.seq
}

func (l *fetchedList[T]) current(seq, key int) bool {
	return l.seq == seq && l.key == key
}

func (l *fetchedList[T]) resolve(seq, key int, items []T) bool {
	if !l.current(seq, key) || l.status != StatusLoading {
		return false
	}
	l.items = cloneSlice(items)
	l.status = StatusIdle
	return true
}

func (l *fetchedList[T]) fail(seq, key int) bool {
	if !l.current(seq, key) || l.status != StatusLoading {
		return false
	}
	l.status = StatusFailed
	return true
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
