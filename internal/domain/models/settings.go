package models

import "coachingfees/internal/docstore"

const (
	DefaultCoachingName = "Coaching Center"

	// Default Bengali confirmation message; placeholders are substituted at
	// dispatch time, unknown ones stay verbatim.
	DefaultSMSTemplate = "প্রিয় {name}, {month} মাসের কোচিং ফি সফলভাবে গ্রহণ করা হয়েছে। ধন্যবাদ। - {coachingName}"
)

// Settings is a singleton document, created lazily on first read.
type Settings struct {
	ID             string `json:"id,omitempty"`
	CoachingName   string `json:"coachingName"`
	SMSTemplate    string `json:"smsTemplate"`
	SendToStudent  bool   `json:"sendToStudent"`
	SendToGuardian bool   `json:"sendToGuardian"`
	SendToTeacher  bool   `json:"sendToTeacher"`
}

func DefaultSettings() Settings {
	return Settings{
		CoachingName:   DefaultCoachingName,
		SMSTemplate:    DefaultSMSTemplate,
		SendToStudent:  true,
		SendToGuardian: true,
		SendToTeacher:  false,
	}
}

func SettingsFromDocument(doc docstore.Document) Settings {
	s := Settings{
		ID:             doc.ID,
		CoachingName:   doc.String("coachingName"),
		SMSTemplate:    doc.String("smsTemplate"),
		SendToStudent:  doc.Bool("sendToStudent", true),
		SendToGuardian: doc.Bool("sendToGuardian", true),
		SendToTeacher:  doc.Bool("sendToTeacher", false),
	}
	if s.CoachingName == "" {
		s.CoachingName = DefaultCoachingName
	}
	if s.SMSTemplate == "" {
		s.SMSTemplate = DefaultSMSTemplate
	}
	return s
}

func (s Settings) Fields() map[string]any {
	return map[string]any{
		"coachingName":   s.CoachingName,
		"smsTemplate":    s.SMSTemplate,
		"sendToStudent":  s.SendToStudent,
		"sendToGuardian": s.SendToGuardian,
		"sendToTeacher":  s.SendToTeacher,
	}
}
