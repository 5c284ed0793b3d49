package handlers

import (
	"net/http"
	"time"

	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/sms-logs?month=YYYY-MM&status=sent|failed
func GetSmsLogs(c *gin.Context) {
	month := utils.TrimOrEmpty(c.Query("month"))
	if month == "" {
		month = utils.CurrentMonthKey(time.Now())
	}
	if !utils.IsCanonicalMonthKey(month) {
		RespondError(c, http.StatusBadRequest, "month must be YYYY-MM", nil)
		return
	}

	status := utils.TrimOrEmpty(c.Query("status"))
	switch status {
	case "", models.SmsStatusSent, models.SmsStatusFailed:
	default:
		RespondError(c, http.StatusBadRequest, "status must be sent or failed", nil)
		return
	}

	repo := repositories.SmsLogRepository{Store: getStore()}
	logs, err := repo.ListByMonth(c.Request.Context(), month, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":  month,
		"status": status,
		"logs":   logs,
	})
}
