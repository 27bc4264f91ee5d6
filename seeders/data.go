package seeders

import "cleaning-console/internal/authz"

type roleData struct {
	ID          int64
	Code        string
	Name        string
	Permissions []string
}

type accountData struct {
	ID       int64
	Username string
	Password string
	Email    string
	Phone    string
	RoleCode string
	UserType string
}

var rolesData = []roleData{
	{ID: 1, Code: "ADMIN", Name: "Administrator", Permissions: authz.AllPermissions},
	{ID: 2, Code: "QLV", Name: "QLV", Permissions: []string{authz.AssignmentView}},
	{ID: 3, Code: "ACCOUNTANT", Name: "Accountant", Permissions: []string{
		authz.ContractView,
		authz.CostManage,
		authz.PayrollView,
		authz.PayrollManage,
	}},
	{ID: 4, Code: "SUPERVISOR", Name: "Supervisor", Permissions: []string{
		authz.EmployeeView,
		authz.AssignmentView,
		authz.AssignmentManage,
		authz.AttendanceView,
		authz.AttendanceManage,
	}},
	{ID: 5, Code: "GUEST", Name: "Guest", Permissions: []string{}},
}

// Development-only credentials.
var accountsData = []accountData{
	{ID: 1, Username: "admin", Password: "admin123", Email: "admin@example.com", RoleCode: "ADMIN", UserType: "STAFF"},
	{ID: 2, Username: "qlv1", Password: "secret", Email: "qlv1@example.com", Phone: "0901000001", RoleCode: "QLV", UserType: "STAFF"},
	{ID: 3, Username: "ketoan1", Password: "secret", Email: "ketoan1@example.com", RoleCode: "ACCOUNTANT", UserType: "STAFF"},
	{ID: 4, Username: "gs1", Password: "secret", Email: "gs1@example.com", RoleCode: "SUPERVISOR", UserType: "STAFF"},
	{ID: 5, Username: "guest", Password: "guest123", RoleCode: "GUEST", UserType: "CUSTOMER"},
}
