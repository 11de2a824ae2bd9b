package pkg

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/photostore/internal/domain"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		mustRegisterValidation(v, "image", validateImagePath)
	}
}

// mustRegisterValidation panics when fn cannot be registered. The built-in
// "image" rule checks local files and must never stay active.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// validateImagePath accepts stored asset paths ending in a supported image extension.
func validateImagePath(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(value))
	for _, allowed := range imageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Bind binds the request body (JSON, form or multipart) into obj and validates
// it. A validation failure is returned as a 422 AppError whose field names use
// the JSON tags of obj.
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return ValidationError(err, obj)
	}
	return nil
}

// BindAndValidate binds and validates obj, writing the error response itself.
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := Bind(c, obj); err != nil {
		Error(c, err)
		return false
	}
	return true
}

// ValidationError converts a binding error into a domain error. Errors that are
// not validator.ValidationErrors (malformed JSON, wrong types) become 400s.
func ValidationError(err error, obj any) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.NewAppError(domain.CodeBadRequest, err.Error(), err)
	}

	jsonTags := buildJSONTagMap(obj)

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := fieldName(fe.StructField(), jsonTags)
		fields[name] = fieldMessage(fe, name, jsonTags)
	}
	return domain.NewValidationError(fields)
}

func fieldName(structField string, jsonTags map[string]string) string {
	if tag, ok := jsonTags[structField]; ok {
		return tag
	}
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

// fieldMessage renders a human readable message for one failed rule.
func fieldMessage(fe validator.FieldError, name string, jsonTags map[string]string) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "email":
		return name + " must be a valid email"
	case "eqfield":
		return fmt.Sprintf("%s must match %s", name, fieldName(fe.Param(), jsonTags))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "image":
		return name + " must be a .jpg, .jpeg or .png image"
	default:
		return name + " is invalid"
	}
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
// If obj is nil or not a struct (pointer), it returns an empty map.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if name := parseJSONTagName(tag); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
