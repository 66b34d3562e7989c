package authsvc

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	authdto "agency_portal/internal/api/auth/dto"
	"agency_portal/internal/common"
	"agency_portal/internal/global"
)

func TestMapVerifyPasswordError(t *testing.T) {
	if err := mapVerifyPasswordError(nil); err != nil {
		t.Errorf("Lỗi nil phải trả về nil, nhận %v", err)
	}

	wrongPass := mapVerifyPasswordError(&googleapi.Error{Code: 400, Message: "INVALID_PASSWORD"})
	var custom *common.Error
	if !errors.As(wrongPass, &custom) {
		t.Fatalf("Lỗi sai mật khẩu phải là *common.Error, nhận %T", wrongPass)
	}
	if custom.Code.Code != common.ErrCodeAuthCredentials.Code {
		t.Errorf("Mã lỗi phải là %s, nhận %s", common.ErrCodeAuthCredentials.Code, custom.Code.Code)
	}
	if custom.Message != "Mật khẩu hiện tại không đúng" {
		t.Errorf("Sai mật khẩu phải có câu riêng, nhận %q", custom.Message)
	}
	if custom.StatusCode != common.StatusBadRequest {
		t.Errorf("Sai mật khẩu phải trả 400, nhận %d", custom.StatusCode)
	}

	// Identity Toolkit đời mới trả INVALID_LOGIN_CREDENTIALS thay cho INVALID_PASSWORD
	wrapped := mapVerifyPasswordError(fmt.Errorf("xác thực thất bại: %w",
		&googleapi.Error{Code: 400, Message: "INVALID_LOGIN_CREDENTIALS"}))
	if !errors.As(wrapped, &custom) || custom.Message != "Mật khẩu hiện tại không đúng" {
		t.Errorf("INVALID_LOGIN_CREDENTIALS bị wrap vẫn phải nhận diện là sai mật khẩu, nhận %v", wrapped)
	}

	// Không lộ việc email có tồn tại hay không
	notFound := mapVerifyPasswordError(&googleapi.Error{Code: 400, Message: "EMAIL_NOT_FOUND"})
	if !errors.As(notFound, &custom) || custom.Message != "Mật khẩu hiện tại không đúng" {
		t.Errorf("EMAIL_NOT_FOUND phải dùng cùng câu sai mật khẩu, nhận %v", notFound)
	}

	network := mapVerifyPasswordError(errors.New("network unreachable"))
	if !errors.As(network, &custom) {
		t.Fatalf("Lỗi khác phải là *common.Error, nhận %T", network)
	}
	if custom.Message != "Không xác thực lại được mật khẩu" {
		t.Errorf("Lỗi ngoài nhóm sai mật khẩu phải dùng câu chung, nhận %q", custom.Message)
	}
	if custom.StatusCode != common.StatusInternalServerError {
		t.Errorf("Lỗi hệ thống phải trả 500, nhận %d", custom.StatusCode)
	}
}

func TestChangePasswordInputRequiresCurrent(t *testing.T) {
	global.InitValidator()

	err := global.ValidateStruct(&authdto.ChangePasswordInput{NewPassword: "matkhau-moi"})
	if err == nil {
		t.Fatal("Thiếu mật khẩu hiện tại phải trả lỗi validation")
	}
	var custom *common.Error
	if !errors.As(err, &custom) {
		t.Fatalf("Lỗi validation phải là *common.Error, nhận %T", err)
	}
	if !strings.Contains(custom.Message, "CurrentPassword") {
		t.Errorf("Thông báo phải nêu trường thiếu, nhận %q", custom.Message)
	}

	valid := &authdto.ChangePasswordInput{CurrentPassword: "cu-123456", NewPassword: "moi-123456"}
	if err := global.ValidateStruct(valid); err != nil {
		t.Errorf("Input đủ hai mật khẩu không được lỗi: %v", err)
	}
}
