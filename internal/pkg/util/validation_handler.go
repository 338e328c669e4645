package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			msg := fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]",
				firstError.Field(),
				firstError.Tag())
			return errors.New(msg)
		}
	}
	return nil
}

// ValidateMonth 校验月份取值
func ValidateMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ValidateRating 评分只允许 1~5
func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
