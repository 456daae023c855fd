package domain

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"-"`    // 明文比对，沿用产品行为
	Role        string `json:"role"` // "user"/"admin"
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Avatar      string `json:"avatar"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserPatch 管理端可改的资料字段；email/id 不可变
type UserPatch struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Avatar      *string `json:"avatar"`
}

func (u User) Apply(p UserPatch) (User, error) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		if *p.Role != RoleUser && *p.Role != RoleAdmin {
			return u, &ValidationError{Field: "role", Reason: "must be user or admin"}
		}
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Designation != nil {
		u.Designation = *p.Designation
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if u.Name == "" {
		return u, &ValidationError{Field: "name", Reason: "required"}
	}
	return u, nil
}
