package query

// IDField is the wire name of every record's identifier.
const IDField = "_id"

// FieldKind tells the filter builder how to treat values compared against a
// field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindBool
	KindTime
	// KindMembership is a list field stored in a side table; Subquery selects
	// the owning record ids and is constrained on the member column.
	KindMembership
)

// Field maps a wire field name to its storage column.
type Field struct {
	Column   string
	Kind     FieldKind
	Subquery string
	Member   string
}

// FieldSet is the set of queryable fields of one resource, keyed by wire name.
type FieldSet map[string]Field

// TaskFields are the queryable fields of a task.
var TaskFields = FieldSet{
	IDField:            {Column: "id"},
	"name":             {Column: "name"},
	"description":      {Column: "description"},
	"deadline":         {Column: "deadline", Kind: KindTime},
	"completed":        {Column: "completed", Kind: KindBool},
	"assignedUser":     {Column: "assigned_user"},
	"assignedUserName": {Column: "assigned_user_name"},
	"dateCreated":      {Column: "date_created", Kind: KindTime},
}

// UserFields are the queryable fields of a user.
var UserFields = FieldSet{
	IDField:       {Column: "id"},
	"name":        {Column: "name"},
	"email":       {Column: "email"},
	"dateCreated": {Column: "date_created", Kind: KindTime},
	"pendingTasks": {
		Column:   "id",
		Kind:     KindMembership,
		Subquery: "SELECT user_id FROM pending_tasks",
		Member:   "task_id",
	},
}
