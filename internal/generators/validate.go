package generators

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"go.eggybyte.com/jerseykit/internal/core/errors"
)

var (
	artifactIDPattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)
	javaPackagePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("artifactid", func(fl validator.FieldLevel) bool {
		return artifactIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("javapackage", func(fl validator.FieldLevel) bool {
		return javaPackagePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks that the names can be used as a Maven artifactId and a Java
// package without escaping the project directory.
func (s ProjectSpec) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.CodeInvalidArgument, "validate project", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.Build(errors.CodeInvalidArgument).
		WithOp("validate project").
		WithMsgf("%s", strings.Join(msgs, "; ")).
		Err()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "ProjectName":
			return "project name is required"
		default:
			return "base package name is required"
		}
	case "artifactid":
		return "project name " + quote(fe.Value()) +
			" must start with a letter and contain only letters, digits, '.', '_' or '-'"
	case "javapackage":
		return "base package name " + quote(fe.Value()) +
			" must be dot-separated Java identifiers (e.g., com.example)"
	default:
		return fe.Error()
	}
}

func quote(v any) string {
	s, _ := v.(string)
	return `"` + s + `"`
}
