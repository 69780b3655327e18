package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Re1354/building-management-system/internal/apperr"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes the body into req and runs its binding tags. On failure
// it answers 400 naming the offending field and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, bindMessage(req, err))
		return false
	}
	return true
}

func bindMessage(req interface{}, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	name := jsonFieldName(req, fe.StructField())
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "required":
		return name + " is required"
	default:
		return "Invalid " + name
	}
}

func jsonFieldName(req interface{}, field string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return field
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field
	}
	return name
}

// optionalInt converts a lenient numeric field. Absent and blank both mean
// unset; anything else that is not a whole number is a validation error.
func optionalInt(n *util.Number, field string) (*int, error) {
	if n == nil || n.Blank() {
		return nil, nil
	}
	v, err := n.Int()
	if err != nil {
		return nil, apperr.Validation(field + " must be a whole number")
	}
	return &v, nil
}

func optionalFloat(n *util.Number, field string) (*float64, error) {
	if n == nil || n.Blank() {
		return nil, nil
	}
	v, err := n.Float64()
	if err != nil {
		return nil, apperr.Validation(field + " must be a number")
	}
	return &v, nil
}
