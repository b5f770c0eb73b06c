package telegram

import (
	"context"

	"github.com/nikmy/adminui/internal/edit"
	"github.com/nikmy/adminui/internal/members"
)

type controller interface {
	Search(q string) []members.Record

	Session() edit.Snapshot
	BeginEdit(owner, id string) (edit.Snapshot, error)
	Stage(owner string, patch members.Patch) (edit.Snapshot, error)
	Save(ctx context.Context, owner string) (members.Record, error)
	Cancel(owner string) error

	Delete(id string) (bool, error)
}
