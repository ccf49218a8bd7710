package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Leganyst/provider-catalog/internal/catalog"
)

// Теги валидации лежат в `binding`, как принято у gin.
const tagName = "binding"

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator возвращает общий экземпляр: имена полей берутся из json-тегов.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName(tagName)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank: %v", err))
		}
		validate = v
	})
	return validate
}

// Struct проверяет структуру и возвращает *catalog.ValidationError по первому нарушению.
func Struct(obj any) error {
	err := Validator().Struct(obj)
	if err == nil {
		return nil
	}
	return translate(err)
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return catalog.NewValidationError("", invalid.Error())
		}
		return err
	}
	fe := verrs[0]
	return catalog.NewValidationError(fieldPath(fe), message(fe))
}

// fieldPath убирает имя корневой структуры: "ProviderRequest.name" -> "name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// GinValidator подключает общий валидатор к binding gin.
type GinValidator struct{}

func (GinValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return Struct(obj)
}

func (GinValidator) Engine() any {
	return Validator()
}
