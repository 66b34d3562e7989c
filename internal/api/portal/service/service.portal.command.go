// Package portalsvc - Service nghiệp vụ cho domain portal (lead, project,
// ticket, chat, activity, archive).
//
// Mọi thao tác ghi đều theo cùng một khuôn: validate input, sanitize text,
// ghi database, ghi activity best-effort rồi cập nhật toast kết quả.
package portalsvc

import (
	"agency_portal/internal/common"
	"agency_portal/internal/notify"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// runCommand bọc một thao tác ghi: hiển thị toast loading trong lúc fn chạy,
// sau đó thay bằng toast thành công hoặc toast lỗi với thông báo đã phân loại.
// notifier nil thì chỉ chạy fn (dùng trong test hoặc job nền).
func runCommand(notifier *notify.Notifier, loadingText, successText string, fn func() error) error {
	if notifier == nil {
		return fn()
	}

	handle := notifier.ShowLoading(loadingText)
	err := fn()
	if err != nil {
		handle.Error(common.UserFacingMessage(err))
		return err
	}
	handle.Success(successText)
	return nil
}

// parseObjectID chuyển chuỗi hex thành ObjectID, trả lỗi validation nếu sai định dạng.
func parseObjectID(id string) (primitive.ObjectID, error) {
	return common.ObjectIDFromParam(id)
}
