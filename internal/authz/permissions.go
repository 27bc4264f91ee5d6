// internal/authz/permissions.go
package authz

// Permission codes granted by the backend. The client treats them as opaque strings;
// these constants exist so callers do not scatter literals.
const (
	// Staff
	EmployeeView   = "EMPLOYEE_VIEW"
	EmployeeManage = "EMPLOYEE_MANAGE"

	// Customers
	CustomerView   = "CUSTOMER_VIEW"
	CustomerManage = "CUSTOMER_MANAGE"

	// Contracts
	ContractView   = "CONTRACT_VIEW"
	ContractManage = "CONTRACT_MANAGE"
	CostManage     = "COST_MANAGE"

	// Assignments
	AssignmentView   = "ASSIGNMENT_VIEW"
	AssignmentManage = "ASSIGNMENT_MANAGE"

	// Payroll
	PayrollView   = "PAYROLL_VIEW"
	PayrollManage = "PAYROLL_MANAGE"

	// Attendance
	AttendanceView   = "ATTENDANCE_VIEW"
	AttendanceManage = "ATTENDANCE_MANAGE"

	// Administration
	UserManage = "USER_MANAGE"
	RoleManage = "ROLE_MANAGE"
)

// AllPermissions lists every known code.
var AllPermissions = []string{
	EmployeeView,
	EmployeeManage,
	CustomerView,
	CustomerManage,
	ContractView,
	ContractManage,
	CostManage,
	AssignmentView,
	AssignmentManage,
	PayrollView,
	PayrollManage,
	AttendanceView,
	AttendanceManage,
	UserManage,
	RoleManage,
}
