package dashboard

import "time"

type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadDone
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadDone:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "pending"
	}
}

func (s LoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LoadState describes the last members load. After a failure the store
// keeps what the previous successful load put there.
type LoadState struct {
	Status   LoadStatus `json:"status"`
	Error    string     `json:"error,omitempty"`
	Attempts int        `json:"attempts"`
	Dropped  int        `json:"dropped,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}
