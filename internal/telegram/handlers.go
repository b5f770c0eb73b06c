package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitaliy-ukiru/fsm-telebot"
	"github.com/vitaliy-ukiru/fsm-telebot/storages/memory"
	"gopkg.in/telebot.v3"

	"github.com/nikmy/adminui/internal/dashboard"
	"github.com/nikmy/adminui/internal/edit"
	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
)

const (
	initialState = fsm.DefaultState

	editReadIDState    fsm.State = "editReadID"
	editReadNameState  fsm.State = "editReadName"
	editReadEmailState fsm.State = "editReadEmail"
	editReadRoleState  fsm.State = "editReadRole"
	editConfirmState   fsm.State = "editConfirm"

	deleteReadIDState fsm.State = "delReadID"
)

const keepValue = "-"

var (
	fieldStates = map[members.Field]fsm.State{
		members.FieldName:  editReadNameState,
		members.FieldEmail: editReadEmailState,
		members.FieldRole:  editReadRoleState,
	}

	editStates = [...]fsm.State{
		editReadNameState,
		editReadEmailState,
		editReadRoleState,
		editConfirmState,
	}
)

const usage = "" +
	"Available commands:\n" +
	"/list [query] - show members matching the query\n" +
	"/edit - edit a member\n" +
	"/delete - delete a member\n"

const sessionLost = "The edit session has been closed, start again with /edit"

func (b *Bot) setupHandlers() {
	manager := fsm.NewManager(
		b.bot,
		nil,
		memory.NewStorage(),
		nil,
	)

	manager.Bind("/start", fsm.AnyState, b.start)
	manager.Bind(telebot.OnText, initialState, b.start)

	manager.Bind("/list", initialState, b.list)

	manager.Bind("/edit", initialState, b.startEdit)
	manager.Bind(telebot.OnText, editReadIDState, b.editReadID)
	manager.Bind(telebot.OnText, editReadNameState, b.readField(members.FieldName, editReadEmailState))
	manager.Bind(telebot.OnText, editReadEmailState, b.readField(members.FieldEmail, editReadRoleState))
	manager.Bind(telebot.OnText, editReadRoleState, b.readField(members.FieldRole, editConfirmState))
	manager.Bind("/save", editConfirmState, b.save)
	for _, st := range editStates {
		manager.Bind("/cancel", st, b.cancel)
	}
	manager.Bind("/cancel", editReadIDState, b.start)

	manager.Bind("/delete", initialState, b.startDelete)
	manager.Bind(telebot.OnText, deleteReadIDState, b.delete)
}

func (b *Bot) setState(s fsm.Context, target fsm.State) {
	err := s.Set(target)
	if err != nil {
		b.log.Warn(errors.WrapFailf(err, "set state to %q", target))
	}
}

func (b *Bot) final(c telebot.Context, s fsm.Context, msg string, opts ...any) error {
	b.setState(s, initialState)
	return c.Send(msg, opts...)
}

func (b *Bot) fail(c telebot.Context, s fsm.Context, err error) error {
	b.log.Error(err)
	return b.final(c, s, "Something went wrong")
}

func (b *Bot) start(c telebot.Context, s fsm.Context) error {
	// an edit begun by another chat is left alone
	_ = b.ctl.Cancel(editOwner(c))
	return b.final(c, s, usage)
}

func (b *Bot) list(c telebot.Context, s fsm.Context) error {
	q := strings.Join(c.Args(), " ")
	return b.final(c, s, renderRows(b.ctl.Search(q), b.maxRows))
}

func (b *Bot) startEdit(c telebot.Context, s fsm.Context) error {
	b.setState(s, editReadIDState)
	return c.Send("Enter member id")
}

func (b *Bot) editReadID(c telebot.Context, s fsm.Context) error {
	id := strings.TrimSpace(c.Text())

	_, err := b.ctl.BeginEdit(editOwner(c), id)
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return b.final(c, s, fmt.Sprintf("No member with id %q", id))
	case errors.Is(err, edit.ErrLocked):
		return b.final(c, s, "Another member is being edited, try again later")
	case err != nil:
		return b.fail(c, s, errors.WrapFail(err, "begin edit"))
	}

	b.setState(s, editReadNameState)
	return b.prompt(c, editReadNameState)
}

func (b *Bot) readField(field members.Field, next fsm.State) fsm.Handler {
	return func(c telebot.Context, s fsm.Context) error {
		if !b.ownsSession(c) {
			return b.final(c, s, sessionLost)
		}

		if value := strings.TrimSpace(c.Text()); value != keepValue {
			var patch members.Patch
			patch.Set(field, value)

			_, err := b.ctl.Stage(editOwner(c), patch)
			if lostSession(err) {
				return b.final(c, s, sessionLost)
			}
			if err != nil {
				return b.fail(c, s, errors.WrapFailf(err, "stage %s", field))
			}
		}

		b.setState(s, next)
		return b.prompt(c, next)
	}
}

func (b *Bot) save(c telebot.Context, s fsm.Context) error {
	rec, err := b.ctl.Save(b.ctx, editOwner(c))
	if lostSession(err) {
		return b.final(c, s, sessionLost)
	}

	var verr *edit.ValidationError
	if errors.As(err, &verr) {
		var sb strings.Builder
		first := members.Field("")
		for _, f := range members.EditableFields {
			msg, ok := verr.Fields[f]
			if !ok {
				continue
			}
			if first == "" {
				first = f
			}
			sb.WriteString(msg)
			sb.WriteString("\n")
		}

		b.setState(s, fieldStates[first])
		if err := c.Send(sb.String()); err != nil {
			return err
		}
		return b.prompt(c, fieldStates[first])
	}

	if err != nil {
		return b.fail(c, s, errors.WrapFail(err, "save member"))
	}

	return b.final(c, s, "Saved\n"+renderRecord(rec))
}

func (b *Bot) cancel(c telebot.Context, s fsm.Context) error {
	err := b.ctl.Cancel(editOwner(c))
	if err != nil {
		return b.final(c, s, sessionLost)
	}
	return b.final(c, s, "Changes discarded")
}

func (b *Bot) startDelete(c telebot.Context, s fsm.Context) error {
	b.setState(s, deleteReadIDState)
	return c.Send("Enter member id")
}

func (b *Bot) delete(c telebot.Context, s fsm.Context) error {
	id := strings.TrimSpace(c.Text())

	removed, err := b.ctl.Delete(id)
	if errors.Is(err, edit.ErrLocked) {
		return b.final(c, s, fmt.Sprintf("Member %q is being edited", id))
	}
	if err != nil {
		return b.fail(c, s, errors.WrapFail(err, "delete member"))
	}

	if !removed {
		return b.final(c, s, fmt.Sprintf("No member with id %q", id))
	}

	return b.final(c, s, "Member deleted")
}

// editOwner keys the edit session by chat, so a chat can only touch an edit
// it has begun itself.
func editOwner(c telebot.Context) string {
	return "telegram:" + strconv.FormatInt(c.Chat().ID, 10)
}

func (b *Bot) ownsSession(c telebot.Context) bool {
	snap := b.ctl.Session()
	return snap.Editing() && snap.Owner == editOwner(c)
}

func lostSession(err error) bool {
	return errors.Is(err, edit.ErrLocked) || errors.Is(err, edit.ErrNotEditing)
}

func (b *Bot) prompt(c telebot.Context, st fsm.State) error {
	staged := b.ctl.Session().Staged

	for field, fieldState := range fieldStates {
		if fieldState == st {
			return c.Send(fmt.Sprintf(
				"Enter %s (now %q), or %s to keep it",
				field.Title(), staged.Get(field), keepValue,
			))
		}
	}

	return c.Send(fmt.Sprintf(
		"Name: %s\nEmail: %s\nRole: %s\n\n/save to commit, /cancel to discard",
		staged.Name, staged.Email, staged.Role,
	))
}
