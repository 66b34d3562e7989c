package global

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"agency_portal/internal/common"
)

// phoneRegex chấp nhận số điện thoại quốc tế đơn giản: tùy chọn +, 7-15 chữ số,
// cho phép khoảng trắng, chấm, gạch ngang và ngoặc phân tách.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\.\-\(\)]{5,18}[0-9]$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("phone", validatePhone)
}

// ValidateStruct kiểm tra input theo các tag validate và trả về lỗi
// đọc được cho rule đầu tiên bị vi phạm.
func ValidateStruct(input interface{}) error {
	err := Validate.Struct(input)
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		first := validationErrs[0]
		msg := fmt.Sprintf("Trường %s không hợp lệ (rule: %s)", first.Field(), first.Tag())
		return common.NewError(common.ErrCodeValidationInput, msg, common.StatusBadRequest, validationErrs.Error())
	}
	return common.ErrInvalidInput
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validatePhone kiểm tra định dạng số điện thoại
func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Rỗng do "required" quyết định, không phải "phone"
	}
	return phoneRegex.MatchString(value)
}
