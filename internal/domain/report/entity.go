package report

// UIStatus is the presentation status of a grid or history cell.
// The empty value marks a blank cell that carries no data.
type UIStatus string

const (
	UIStatusNone   UIStatus = ""
	UIStatusOnTime UIStatus = "ON_TIME"
	UIStatusLate   UIStatus = "LATE"
	UIStatusLeave  UIStatus = "LEAVE"
	UIStatusAbsent UIStatus = "ABSENT"
)

func (s UIStatus) IsBlank() bool {
	return s == UIStatusNone
}

// ReadOptions selects between a pure read and a read that also
// materializes cells that have no stored day status yet.
type ReadOptions struct {
	Persist bool
}
