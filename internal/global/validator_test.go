package global

import (
	"errors"
	"strings"
	"testing"

	"agency_portal/internal/common"
)

type sampleInput struct {
	Title string `validate:"required,no_xss,max=200"`
	Email string `validate:"omitempty,email"`
	Phone string `validate:"omitempty,phone"`
}

func TestValidateStruct(t *testing.T) {
	InitValidator()

	if err := ValidateStruct(&sampleInput{Title: "Website công ty"}); err != nil {
		t.Errorf("Input hợp lệ không được lỗi: %v", err)
	}

	err := ValidateStruct(&sampleInput{Title: ""})
	if err == nil {
		t.Fatal("Thiếu trường required phải trả lỗi")
	}
	var custom *common.Error
	if !errors.As(err, &custom) {
		t.Fatalf("Lỗi validation phải là *common.Error, nhận %T", err)
	}
	if custom.Code.Code != common.ErrCodeValidationInput.Code {
		t.Errorf("Mã lỗi phải là %s, nhận %s", common.ErrCodeValidationInput.Code, custom.Code.Code)
	}
	if !strings.Contains(custom.Message, "Title") || !strings.Contains(custom.Message, "required") {
		t.Errorf("Thông báo phải nêu trường và rule đầu tiên bị vi phạm, nhận %q", custom.Message)
	}
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	bad := []string{
		"<script>alert(1)</script>",
		"javascript:alert(1)",
		`<img onerror="x">`,
		"<IFRAME src=x>",
	}
	for _, value := range bad {
		if err := ValidateStruct(&sampleInput{Title: value}); err == nil {
			t.Errorf("Giá trị %q phải bị chặn bởi no_xss", value)
		}
	}

	if err := ValidateStruct(&sampleInput{Title: "Thiết kế landing page & SEO"}); err != nil {
		t.Errorf("Văn bản thường không được bị chặn: %v", err)
	}
}

func TestValidatePhone(t *testing.T) {
	InitValidator()

	valid := []string{"+84 912 345 678", "0912345678", "028 3823-4567"}
	for _, value := range valid {
		if err := ValidateStruct(&sampleInput{Title: "x", Phone: value}); err != nil {
			t.Errorf("Số %q phải hợp lệ: %v", value, err)
		}
	}

	invalid := []string{"abc", "12", "+84-abc-123"}
	for _, value := range invalid {
		if err := ValidateStruct(&sampleInput{Title: "x", Phone: value}); err == nil {
			t.Errorf("Số %q phải bị từ chối", value)
		}
	}

	// Rỗng do required quyết định, không phải phone
	if err := ValidateStruct(&sampleInput{Title: "x", Phone: ""}); err != nil {
		t.Errorf("Phone rỗng với omitempty không được lỗi: %v", err)
	}
}
