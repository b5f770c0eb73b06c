package edit

import (
	"context"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
)

var (
	ErrLocked     = errors.Error("edit lock is held")
	ErrNotEditing = errors.Error("no record is being edited")
)

type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State    State          `json:"state"`
	ActiveID string         `json:"active_id,omitempty"`
	Owner    string         `json:"owner,omitempty"`
	Staged   members.Fields `json:"staged"`
}

func (s Snapshot) Editing() bool {
	return s.State == Editing
}

// CommitFunc stores staged fields for the record with the given id.
type CommitFunc func(id string, fields members.Fields)

// Session is the inline edit state machine: Idle or Editing one record.
// At most one record can be edited at a time, and only the owner that began
// the edit may stage, save or cancel it. Not safe for concurrent use.
type Session struct {
	state    State
	activeID string
	owner    string
	staged   members.Fields
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{State: s.state, ActiveID: s.activeID, Owner: s.owner, Staged: s.staged}
}

func (s *Session) IsEditing(id string) bool {
	return s.state == Editing && s.activeID == id
}

// Begin starts editing rec on behalf of owner. Beginning the record already
// under edit by the same owner keeps its staged values.
func (s *Session) Begin(owner string, rec members.Record) error {
	if s.state == Editing {
		if s.activeID == rec.ID && s.owner == owner {
			return nil
		}
		return errors.Wrapf(ErrLocked, "%q is under edit", s.activeID)
	}

	s.state = Editing
	s.activeID = rec.ID
	s.owner = owner
	s.staged = rec.Fields()
	return nil
}

func (s *Session) Stage(owner string, patch members.Patch) error {
	err := s.check(owner)
	if err != nil {
		return err
	}

	s.staged = patch.ApplyTo(s.staged)
	return nil
}

// Cancel discards staged values. Cancelling while Idle is a no-op.
func (s *Session) Cancel(owner string) error {
	if s.state != Editing {
		return nil
	}

	err := s.check(owner)
	if err != nil {
		return err
	}

	s.reset()
	return nil
}

// Save validates staged fields and on success commits them and goes Idle.
// On validation failure the session is left as is and the validation error
// is returned.
func (s *Session) Save(ctx context.Context, owner string, v Validator, commit CommitFunc) error {
	err := s.check(owner)
	if err != nil {
		return err
	}

	staged := s.staged
	if v != nil {
		err = v.Validate(ctx, staged)
		if err != nil {
			return err
		}
	}

	commit(s.activeID, staged)
	s.reset()
	return nil
}

func (s *Session) check(owner string) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	if s.owner != owner {
		return errors.Wrapf(ErrLocked, "%q is edited by someone else", s.activeID)
	}
	return nil
}

func (s *Session) reset() {
	s.state = Idle
	s.activeID = ""
	s.owner = ""
	s.staged = members.Fields{}
}
