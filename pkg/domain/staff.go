package domain

// Staff is a clinic employee account as listed on the admin users screen.
type Staff struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}
