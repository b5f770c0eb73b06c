package members

// Record is a single member row. ID is the immutable key.
type Record struct {
	ID    string `json:"id"    bson:"id"`
	Name  string `json:"name"  bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role"  bson:"role"`
}

// Fields is the editable part of a Record.
type Fields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r Record) Fields() Fields {
	return Fields{Name: r.Name, Email: r.Email, Role: r.Role}
}

// Patch is a partial Fields value, nil means "leave as is".
type Patch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (f Fields) Patch() Patch {
	return Patch{Name: &f.Name, Email: &f.Email, Role: &f.Role}
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil
}

func (p Patch) ApplyTo(f Fields) Fields {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.Role != nil {
		f.Role = *p.Role
	}
	return f
}

func (r Record) apply(p Patch) Record {
	f := p.ApplyTo(r.Fields())
	r.Name, r.Email, r.Role = f.Name, f.Email, f.Role
	return r
}

type Field string

const (
	FieldID    Field = "id"
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// EditableFields are listed in table column order.
var EditableFields = [...]Field{FieldName, FieldEmail, FieldRole}

// Title is the column title shown to operators.
func (f Field) Title() string {
	switch f {
	case FieldID:
		return "id"
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldRole:
		return "Role"
	default:
		return string(f)
	}
}

func (f Fields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldRole:
		return f.Role
	default:
		return ""
	}
}

func (p *Patch) Set(field Field, value string) {
	switch field {
	case FieldName:
		p.Name = &value
	case FieldEmail:
		p.Email = &value
	case FieldRole:
		p.Role = &value
	}
}
