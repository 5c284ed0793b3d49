package handlers

import (
	"net/http"
	"time"

	"coachingfees/internal/http/middleware"
	"coachingfees/internal/repositories"
	"coachingfees/internal/services"
	"coachingfees/internal/sms"
	"coachingfees/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/payments?month=YYYY-MM
// Returns the reconciled per-student status for one month. The view is
// rebuilt in full on every call.
func GetPaymentsView(c *gin.Context) {
	month := utils.TrimOrEmpty(c.Query("month"))
	if month == "" {
		month = utils.CurrentMonthKey(time.Now())
	}
	if !utils.IsCanonicalMonthKey(month) {
		RespondError(c, http.StatusBadRequest, "month must be YYYY-MM", nil)
		return
	}

	ctx := c.Request.Context()
	reqID := middleware.GetRequestID(c)

	rec := services.ReconcileService{
		Payments:  repositories.PaymentRepository{Store: getStore()},
		RequestID: reqID,
	}
	if err := rec.Rebuild(ctx); err != nil {
		RespondDomainError(c, err)
		return
	}

	students, err := repositories.StudentRepository{Store: getStore()}.List(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rows := make([]gin.H, 0, len(students))
	for _, st := range students {
		rows = append(rows, gin.H{
			"studentId":     st.ID,
			"name":          st.Name,
			"studentPhone":  st.StudentPhone,
			"guardianPhone": st.GuardianPhone,
			"teacherPhone":  st.TeacherPhone,
			"active":        st.Active,
			"status":        rec.StatusFor(st.ID, month),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"month":        month,
		"studentField": rec.StudentField,
		"payments":     rows,
	})
}

type markPaidRequest struct {
	StudentID  string `json:"studentId"`
	Month      string `json:"month"`
	AdminEmail string `json:"adminEmail"`
}

// POST /api/functions/mark-paid
// The invocation surface: {studentId, month, adminEmail} -> {ok, error?}.
func MarkPaid(c *gin.Context) {
	var req markPaidRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cfg := getEnv()
	reqID := middleware.GetRequestID(c)

	svc := services.MarkPaidService{
		Students: repositories.StudentRepository{Store: getStore()},
		Payments: repositories.PaymentRepository{Store: getStore()},
		Settings: repositories.SettingsRepository{Store: getStore()},
		Dispatch: services.DispatchService{
			Sender: &sms.Client{
				BaseURL:    cfg.SmsBaseURL,
				APIKey:     cfg.SmsAPIKey,
				DeviceID:   cfg.SmsDeviceID,
				HTTPClient: &http.Client{Timeout: cfg.SmsTimeout},
			},
			Logs:      repositories.SmsLogRepository{Store: getStore()},
			RequestID: reqID,
		},
		AdminEmails: cfg.AdminEmails,
		RequestID:   reqID,
	}

	res, err := svc.MarkPaid(c.Request.Context(), req.StudentID, req.Month, req.AdminEmail)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"committed": res.Committed,
		"notified":  res.Notified,
	})
}

// GET /api/payments/:studentId/:month/receipt
// Fee receipt PDF (inline) for a paid month.
func GetPaymentReceiptPDF(c *gin.Context) {
	studentID := utils.TrimOrEmpty(c.Param("studentId"))
	month := utils.TrimOrEmpty(c.Param("month"))
	if studentID == "" {
		RespondError(c, http.StatusBadRequest, "invalid student id", nil)
		return
	}

	svc := services.ReceiptService{
		Students:  repositories.StudentRepository{Store: getStore()},
		Payments:  repositories.PaymentRepository{Store: getStore()},
		Settings:  repositories.SettingsRepository{Store: getStore()},
		RequestID: middleware.GetRequestID(c),
	}

	pdfBytes, filename, err := svc.Generate(c.Request.Context(), studentID, month)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
