package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type dateParams struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

// checkDates is a no-op unless strict dates are enabled. Ordering of start
// and end is never checked; an inverted range simply matches nothing.
func (c *climateControllerImpl) checkDates(start, end string) error {
	if !c.strictDates {
		return nil
	}
	return validateDates(start, end)
}

func validateDates(start, end string) error {
	err := validate.Struct(dateParams{Start: start, End: end})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", strings.ToLower(fe.Field()), fe.Value())
	}
	return err
}
