// Package validation wraps a shared go-playground validator with the custom
// tags and struct rules of the job board payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobboard-engine/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("jobtype", validateJobType)
	_ = v.RegisterValidation("role", validateRole)

	v.RegisterStructValidation(jobInputRules, domain.JobInput{})
	v.RegisterStructValidation(registerRules, domain.RegisterInput{})
	return v
}

func validateJobType(fl validator.FieldLevel) bool {
	return domain.JobType(fl.Field().String()).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).Valid()
}

func jobInputRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.JobInput)
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMax < *in.SalaryMin {
		sl.ReportError(in.SalaryMax, "salaryMax", "SalaryMax", "gtefield", "salaryMin")
	}
}

func registerRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.RegisterInput)
	name := strings.TrimSpace(in.CompanyName)
	switch in.Role {
	case domain.RoleEmployer:
		if len([]rune(name)) < 2 {
			sl.ReportError(in.CompanyName, "companyName", "CompanyName", "required_employer", "")
		}
	case domain.RoleJobseeker:
		if name != "" || strings.TrimSpace(in.CompanyDescription) != "" {
			sl.ReportError(in.CompanyName, "companyName", "CompanyName", "excluded_jobseeker", "")
		}
	}
}

// Struct validates v and converts failures into a domain validation error
// with one detail line per offending field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describe(fe))
	}
	return domain.ValidationDetails("invalid input", details)
}

func describe(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", f, fe.Param())
	case "email":
		return f + " must be a valid email"
	case "jobtype":
		return f + " must be one of remote, full-time, part-time, internship, contract"
	case "role":
		return f + " must be jobseeker or employer"
	case "gtefield":
		return f + " must be greater than or equal to " + fe.Param()
	case "required_employer":
		return f + " is required for employers (at least 2 characters)"
	case "excluded_jobseeker":
		return "company fields are not allowed for jobseekers"
	default:
		return fmt.Sprintf("%s failed %s", f, fe.Tag())
	}
}
