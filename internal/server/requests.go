package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON body and runs struct validation; failures are Validation errors.
func bind(c *fiber.Ctx, request any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(request); err != nil {
			return apperr.Validation("body", "Request body is not valid JSON.")
		}
	}

	if err := validate.Struct(request); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return apperr.Validation(fe.Field(), validationMessage(fe))
		}
		return apperr.Validation("body", err.Error())
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

type createJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements any    `json:"requirements"`
	Salary       any    `json:"salary"`
	Experience   any    `json:"experience"`
	Location     string `json:"location"`
	LocationType string `json:"locationType"`
	JobType      string `json:"jobType"`
	Position     any    `json:"position"`
	CompanyID    string `json:"companyId"`
	Deadline     string `json:"deadline"`
}

func (r createJobRequest) draft() services.JobDraft {
	return services.JobDraft{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		Salary:          r.Salary,
		ExperienceLevel: r.Experience,
		Location:        r.Location,
		LocationType:    r.LocationType,
		JobType:         r.JobType,
		Position:        r.Position,
		CompanyID:       r.CompanyID,
		Deadline:        r.Deadline,
	}
}

type updateJobRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements any     `json:"requirements"`
	Salary       any     `json:"salary"`
	Experience   any     `json:"experience"`
	Location     *string `json:"location"`
	LocationType *string `json:"locationType"`
	JobType      *string `json:"jobType"`
	Position     any     `json:"position"`
	CompanyID    *string `json:"companyId"`
	Deadline     *string `json:"deadline"`
}

func (r updateJobRequest) update() services.JobUpdate {
	return services.JobUpdate{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		Salary:          r.Salary,
		ExperienceLevel: r.Experience,
		Location:        r.Location,
		LocationType:    r.LocationType,
		JobType:         r.JobType,
		Position:        r.Position,
		CompanyID:       r.CompanyID,
		Deadline:        r.Deadline,
	}
}

type statusRequest struct {
	Status        string `json:"status"`
	InterviewDate string `json:"interviewDate"`
	InterviewTime string `json:"interviewTime"`
	Mode          string `json:"mode"`
	Location      string `json:"location"`
	MeetingLink   string `json:"meetingLink" validate:"omitempty,max=2048"`
	Notes         string `json:"notes" validate:"max=2000"`
}

func (r statusRequest) change() services.StatusChange {
	return services.StatusChange{
		Status:        r.Status,
		InterviewDate: r.InterviewDate,
		InterviewTime: r.InterviewTime,
		Mode:          r.Mode,
		Location:      r.Location,
		MeetingLink:   r.MeetingLink,
		Notes:         r.Notes,
	}
}

type registerCompanyRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=120"`
}

type updateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Website     *string `json:"website" validate:"omitempty,http_url"`
	Location    *string `json:"location" validate:"omitempty,max=120"`
}

func (r updateCompanyRequest) update() services.CompanyUpdate {
	return services.CompanyUpdate{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Location:    r.Location,
	}
}

type profileRequest struct {
	FullName *string `json:"fullname" validate:"omitempty,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
	Resume   *string `json:"resume" validate:"omitempty,http_url"`
}

func (r profileRequest) update() services.ProfileUpdate {
	return services.ProfileUpdate{
		FullName:  r.FullName,
		Email:     r.Email,
		Role:      r.Role,
		ResumeURL: r.Resume,
	}
}
