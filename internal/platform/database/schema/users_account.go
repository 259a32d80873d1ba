package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Role        string
	IsStaff     string
	IsSuperuser string
	Bio         string
	FirstName   string
	LastName    string
	CreatedAt   string
	UpdatedAt   string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Role:        "role",
	IsStaff:     "isstaff",
	IsSuperuser: "issuperuser",
	Bio:         "bio",
	FirstName:   "firstname",
	LastName:    "lastname",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.IsStaff, t.IsSuperuser,
		t.Bio, t.FirstName, t.LastName, t.CreatedAt, t.UpdatedAt,
	}
}
