package api

import (
	"context"

	"github.com/nikmy/adminui/internal/dashboard"
	"github.com/nikmy/adminui/internal/edit"
	"github.com/nikmy/adminui/internal/members"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type controller interface {
	Load(ctx context.Context) error
	State() dashboard.LoadState

	SetQuery(q string)
	Query() string
	Search(q string) []members.Record

	Session() edit.Snapshot
	BeginEdit(owner, id string) (edit.Snapshot, error)
	Stage(owner string, patch members.Patch) (edit.Snapshot, error)
	Save(ctx context.Context, owner string) (members.Record, error)
	Cancel(owner string) error

	Create(ctx context.Context, fields members.Fields) (members.Record, error)
	Delete(id string) (bool, error)
}
