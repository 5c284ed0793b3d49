package handlers

import (
	"net/http"

	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/settings
// The singleton is created lazily with defaults on first read.
func GetSettings(c *gin.Context) {
	repo := repositories.SettingsRepository{Store: getStore()}
	s, err := repo.Load(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}

type settingsRequest struct {
	CoachingName   string `json:"coachingName"`
	SMSTemplate    string `json:"smsTemplate"`
	SendToStudent  *bool  `json:"sendToStudent"`
	SendToGuardian *bool  `json:"sendToGuardian"`
	SendToTeacher  *bool  `json:"sendToTeacher"`
}

// PUT /api/settings
func UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.CoachingName) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "coachingName", Msg: "required"})
		return
	}

	s := models.Settings{
		CoachingName:   utils.TrimOrEmpty(req.CoachingName),
		SMSTemplate:    utils.TrimOrEmpty(req.SMSTemplate),
		SendToStudent:  boolOr(req.SendToStudent, true),
		SendToGuardian: boolOr(req.SendToGuardian, true),
		SendToTeacher:  boolOr(req.SendToTeacher, false),
	}
	if s.SMSTemplate == "" {
		s.SMSTemplate = models.DefaultSMSTemplate
	}

	repo := repositories.SettingsRepository{Store: getStore()}
	saved, err := repo.Save(c.Request.Context(), s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": saved})
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
