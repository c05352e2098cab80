package http

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
)

var registerJSONNames sync.Once

// useJSONFieldNames makes validation errors report the wire names (first_name, skills[0].skill_name).
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindProfileUpdate decodes, normalizes and then validates, so "  " fails a required check
// and a padded upper-case email passes.
func bindProfileUpdate(c *gin.Context, req *UpdateProfileRequest) error {
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(req); err != nil {
		return apperror.NewInvalidInput("invalid JSON body for profile update", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.NewInvalidInput("unexpected data after JSON body", err)
	}
	req.Normalize()
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInvalidInput("request validation failed", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return apperror.NewValidation(fields)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
