package authsvc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"agency_portal/internal/common"
)

// PasswordVerifier xác thực lại mật khẩu hiện tại của người dùng qua
// Identity Toolkit. Admin SDK không có API kiểm tra mật khẩu nên phải
// gọi verifyPassword bằng web API key.
type PasswordVerifier struct {
	rp *identitytoolkit.RelyingpartyService
}

// NewPasswordVerifier tạo verifier từ web API key. Key rỗng trả về nil:
// đổi mật khẩu sẽ bị từ chối cho tới khi cấu hình FIREBASE_WEB_API_KEY.
func NewPasswordVerifier(ctx context.Context, apiKey string) (*PasswordVerifier, error) {
	if apiKey == "" {
		return nil, nil
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &PasswordVerifier{rp: svc.Relyingparty}, nil
}

// Verify kiểm tra email và mật khẩu với Identity Toolkit.
func (v *PasswordVerifier) Verify(ctx context.Context, email, password string) error {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:    email,
		Password: password,
	}
	_, err := v.rp.VerifyPassword(req).Context(ctx).Do()
	return mapVerifyPasswordError(err)
}

// mapVerifyPasswordError phân loại lỗi Identity Toolkit thành lỗi hệ thống.
// Sai mật khẩu trả câu riêng, các lỗi khác (mạng, quota) dùng câu chung.
func mapVerifyPasswordError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if strings.Contains(msg, "INVALID_PASSWORD") ||
			strings.Contains(msg, "INVALID_LOGIN_CREDENTIALS") ||
			strings.Contains(msg, "EMAIL_NOT_FOUND") {
			return common.NewError(common.ErrCodeAuthCredentials,
				"Mật khẩu hiện tại không đúng", common.StatusBadRequest, nil)
		}
	}
	return common.NewError(common.ErrCodeAuthCredentials,
		"Không xác thực lại được mật khẩu", common.StatusInternalServerError, err.Error())
}
