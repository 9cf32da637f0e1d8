package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/models"
)

// maxGoals bounds a plausible goal count for one side
const maxGoals = 30

// DataValidator validates normalized match records
type DataValidator struct {
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &DataValidator{
		validate: validate,
		logger:   logger,
	}
}

// ValidateMatch validates a match for required fields and score consistency
func (v *DataValidator) ValidateMatch(match *models.Match) []string {
	var errs []string

	if err := v.validate.Struct(match); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range verrs {
				errs = append(errs, fieldMessage(e))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if match.IsFixture() {
		return errs
	}

	ft, ht := match.FullTime, match.HalfTime
	if ft.Home > maxGoals || ft.Away > maxGoals {
		errs = append(errs, fmt.Sprintf("full_time out of range, got %d-%d", ft.Home, ft.Away))
	}
	if match.HalfTimeKnown && (ht.Home > ft.Home || ht.Away > ft.Away) {
		errs = append(errs, fmt.Sprintf("half_time %d-%d exceeds full_time %d-%d", ht.Home, ht.Away, ft.Home, ft.Away))
	}

	return errs
}

// Reason returns a short label for the first validation failure, used as a metric label
func (v *DataValidator) Reason(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	first := errs[0]
	if i := strings.IndexAny(first, " :"); i > 0 {
		return first[:i]
	}
	return first
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nefield":
		return fmt.Sprintf("%s must differ from the home side", field)
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}
