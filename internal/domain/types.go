package domain

// RecipientRole identifies which contact of a student a message targets.
type RecipientRole string

const (
	RoleStudent  RecipientRole = "student"
	RoleGuardian RecipientRole = "guardian"
	RoleTeacher  RecipientRole = "teacher"
)

// Recipient pairs a role with the raw (not yet normalized) phone number.
type Recipient struct {
	Role  RecipientRole
	Phone string
}
