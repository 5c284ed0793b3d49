package models

import (
	"time"

	"coachingfees/internal/docstore"
)

// Student contact fields are mutable; identity is the document id.
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StudentPhone  string    `json:"studentPhone,omitempty"`
	GuardianPhone string    `json:"guardianPhone,omitempty"`
	TeacherPhone  string    `json:"teacherPhone,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

func StudentFromDocument(doc docstore.Document) Student {
	return Student{
		ID:            doc.ID,
		Name:          doc.String("name"),
		StudentPhone:  doc.String("studentPhone"),
		GuardianPhone: doc.String("guardianPhone"),
		TeacherPhone:  doc.String("teacherPhone"),
		Active:        doc.Bool("active", true),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// Fields renders the mutable attributes for a store write.
func (s Student) Fields() map[string]any {
	return map[string]any{
		"name":          s.Name,
		"studentPhone":  s.StudentPhone,
		"guardianPhone": s.GuardianPhone,
		"teacherPhone":  s.TeacherPhone,
		"active":        s.Active,
	}
}
