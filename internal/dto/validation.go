package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/Muhol/Olabs-sub000/internal/timegrid"
)

// RegisterValidations 注册本模块自定义的 binding 校验标签
//
//	hhmm: "H:MM" 或 "HH:MM"，小时 0-23，分钟 00-59
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timegrid.WellFormed(fl.Field().String())
	})
}
