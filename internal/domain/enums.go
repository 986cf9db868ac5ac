package domain

type ProjectStatus string

const (
	ProjectNotStarted            ProjectStatus = "Not Started"
	ProjectStarted               ProjectStatus = "Started"
	ProjectUserTesting           ProjectStatus = "User Testing"
	ProjectUpdate                ProjectStatus = "Update"
	ProjectCompleted             ProjectStatus = "Completed"
	ProjectCompletedBlocked      ProjectStatus = "Completed (Blocked)"
	ProjectCompletedNotSatisfied ProjectStatus = "Completed (End User Not Satisfied)"
)

// IsCompleted reports whether the status is one of the terminal
// completed variants.
func (s ProjectStatus) IsCompleted() bool {
	switch s {
	case ProjectCompleted, ProjectCompletedBlocked, ProjectCompletedNotSatisfied:
		return true
	}
	return false
}

type TaskType string

const (
	TaskTypeRisk  TaskType = "risk"
	TaskTypeIssue TaskType = "issue"
	TaskTypeTask  TaskType = "task"
)

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskStarted    TaskStatus = "Started"
	TaskCompleted  TaskStatus = "Completed"
	TaskOnHold     TaskStatus = "On Hold"
	TaskBlocked    TaskStatus = "Blocked"
)

type Frequency string

const (
	FreqDaily          Frequency = "Daily"
	FreqWeekly         Frequency = "Weekly"
	FreqMonthly        Frequency = "Monthly"
	FreqTwiceAMonth    Frequency = "Twice a month"
	FreqThreeWeeksOnce Frequency = "3 Weeks Once"
	FreqSpecificDates  Frequency = "Specific Dates"
)

type ToDoFrequency string

const (
	ToDoOnce    ToDoFrequency = "Once"
	ToDoDaily   ToDoFrequency = "Daily"
	ToDoWeekly  ToDoFrequency = "Weekly"
	ToDoMonthly ToDoFrequency = "Monthly"
)

type Role string

const (
	RoleMD               Role = "MD"
	RoleDirector         Role = "Director"
	RoleAdminManager     Role = "Admin Manager"
	RoleOperationManager Role = "Operation Manager"
	RoleSuperLeader      Role = "Super Leader"
	RoleTeamLeader       Role = "Team Leader"
	RoleSubTeamLeader    Role = "Sub Team Leader"
	RoleStaff            Role = "Staff"
)

// roleRank orders roles from most senior (lowest value) to least.
var roleRank = map[Role]int{
	RoleMD:               0,
	RoleDirector:         1,
	RoleAdminManager:     2,
	RoleOperationManager: 3,
	RoleSuperLeader:      4,
	RoleTeamLeader:       5,
	RoleSubTeamLeader:    6,
	RoleStaff:            7,
}

// Rank returns the position of the role in the seniority hierarchy.
// Unknown roles rank below Staff.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return len(roleRank)
}

// Outranks reports whether r is strictly more senior than other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() < other.Rank()
}

type BeneficiaryKind string

const (
	BeneficiaryUser BeneficiaryKind = "user"
	BeneficiaryTeam BeneficiaryKind = "team"
)
