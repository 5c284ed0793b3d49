package handlers

import (
	"net/http"

	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"

	"github.com/gin-gonic/gin"
)

type studentRequest struct {
	Name          string `json:"name"`
	StudentPhone  string `json:"studentPhone"`
	GuardianPhone string `json:"guardianPhone"`
	TeacherPhone  string `json:"teacherPhone"`
	Active        *bool  `json:"active"`
}

func (r studentRequest) validate() error {
	if utils.TrimOrEmpty(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	for field, phone := range map[string]string{
		"studentPhone":  r.StudentPhone,
		"guardianPhone": r.GuardianPhone,
		"teacherPhone":  r.TeacherPhone,
	} {
		if utils.TrimOrEmpty(phone) != "" && !utils.IsValidPhone(phone) {
			return domain.ValidationError{Field: field, Msg: "invalid Bangladesh phone number"}
		}
	}
	return nil
}

func (r studentRequest) model() models.Student {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return models.Student{
		Name:          utils.TrimOrEmpty(r.Name),
		StudentPhone:  utils.TrimOrEmpty(r.StudentPhone),
		GuardianPhone: utils.TrimOrEmpty(r.GuardianPhone),
		TeacherPhone:  utils.TrimOrEmpty(r.TeacherPhone),
		Active:        active,
	}
}

// GET /api/students
func GetStudents(c *gin.Context) {
	repo := repositories.StudentRepository{Store: getStore()}
	students, err := repo.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// POST /api/students
func CreateStudent(c *gin.Context) {
	var req studentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.StudentRepository{Store: getStore()}
	st, err := repo.Create(c.Request.Context(), req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": st})
}

// PUT /api/students/:id
func UpdateStudent(c *gin.Context) {
	id := utils.TrimOrEmpty(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "invalid student id", nil)
		return
	}

	var req studentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.StudentRepository{Store: getStore()}
	st, err := repo.Update(c.Request.Context(), id, req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": st})
}

// DELETE /api/students/:id
func DeleteStudent(c *gin.Context) {
	id := utils.TrimOrEmpty(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "invalid student id", nil)
		return
	}

	repo := repositories.StudentRepository{Store: getStore()}
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
