package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestUserFacingMessage(t *testing.T) {
	if got := UserFacingMessage(nil); got != MsgSuccess {
		t.Errorf("Lỗi nil phải trả về thông báo thành công, nhận %q", got)
	}

	if got := UserFacingMessage(ErrPermissionDenied); got != MsgUserPermissionDenied {
		t.Errorf("Lỗi phân quyền phải có câu riêng, nhận %q", got)
	}

	validationErr := NewError(ErrCodeValidationInput, "Trường Title không hợp lệ (rule: required)", StatusBadRequest, nil)
	if got := UserFacingMessage(validationErr); got != "Trường Title không hợp lệ (rule: required)" {
		t.Errorf("Lỗi validation phải trả nguyên văn, nhận %q", got)
	}

	if got := UserFacingMessage(errors.New("mongo: socket closed")); got != MsgUserActionFailed {
		t.Errorf("Lỗi khác phải dùng câu chung, nhận %q", got)
	}
	if got := UserFacingMessage(ErrMongoQuery); got != MsgUserActionFailed {
		t.Errorf("Lỗi database không được lộ chi tiết, nhận %q", got)
	}
}

func TestIsQueryError(t *testing.T) {
	if IsQueryError(nil) {
		t.Error("nil không phải lỗi truy vấn")
	}

	// 96 = sort exceeded memory limit
	sortErr := mongo.CommandError{Code: 96, Message: "Sort exceeded memory limit"}
	if !IsQueryError(sortErr) {
		t.Error("Lỗi sort quá bộ nhớ phải thuộc nhóm truy vấn")
	}
	if !IsQueryError(fmt.Errorf("truy vấn thất bại: %w", sortErr)) {
		t.Error("Lỗi truy vấn bị wrap vẫn phải được nhận diện")
	}

	if !IsQueryError(ErrMongoQuery) {
		t.Error("ErrMongoQuery phải thuộc nhóm truy vấn")
	}

	if IsQueryError(ErrMongoNetwork) {
		t.Error("Lỗi mạng không thuộc nhóm truy vấn, không được kích hoạt fallback")
	}
	if IsQueryError(errors.New("connection refused")) {
		t.Error("Lỗi thường không thuộc nhóm truy vấn")
	}
}

// Tầng service luôn đưa lỗi Mongo qua ConvertMongoError trước khi trả lên,
// nên IsQueryError phải nhận diện được cả lỗi ĐÃ convert, không chỉ lỗi thô.
func TestConvertMongoErrorQueryCodes(t *testing.T) {
	sortErr := mongo.CommandError{Code: 96, Message: "Sort exceeded memory limit"}
	converted := ConvertMongoError(sortErr)
	if !errors.Is(converted, ErrMongoQuery) {
		t.Errorf("Mã 96 phải convert thành ErrMongoQuery, nhận %v", converted)
	}
	if !IsQueryError(converted) {
		t.Error("Lỗi sort quá bộ nhớ sau khi convert vẫn phải thuộc nhóm truy vấn")
	}

	planErr := mongo.CommandError{Code: 291, Message: "error processing query: no query execution plans"}
	converted = ConvertMongoError(planErr)
	if !errors.Is(converted, ErrMongoQuery) {
		t.Errorf("Mã 291 (thiếu index) phải convert thành ErrMongoQuery, nhận %v", converted)
	}
	if errors.Is(converted, ErrMongoAuth) {
		t.Error("Mã 291 không được xếp nhầm vào nhóm xác thực")
	}
	if !IsQueryError(converted) {
		t.Error("Lỗi thiếu index sau khi convert vẫn phải thuộc nhóm truy vấn")
	}

	wrapped := fmt.Errorf("truy vấn leads thất bại: %w", mongo.CommandError{Code: 96})
	if !IsQueryError(ConvertMongoError(wrapped)) {
		t.Error("Lỗi wrap rồi convert vẫn phải thuộc nhóm truy vấn")
	}

	authErr := mongo.CommandError{Code: 211, Message: "KeyNotFound"}
	if !errors.Is(ConvertMongoError(authErr), ErrMongoAuth) {
		t.Errorf("Dải 200-299 vẫn phải thuộc nhóm xác thực, nhận %v", ConvertMongoError(authErr))
	}
}

func TestObjectIDFromParam(t *testing.T) {
	oid, err := ObjectIDFromParam("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("Hex hợp lệ không được lỗi: %v", err)
	}
	if oid.Hex() != "507f1f77bcf86cd799439011" {
		t.Errorf("ObjectID không khớp, nhận %s", oid.Hex())
	}

	if _, err := ObjectIDFromParam("khong-phai-hex"); err == nil {
		t.Error("Hex không hợp lệ phải trả lỗi")
	}
	var custom *Error
	_, err = ObjectIDFromParam("")
	if !errors.As(err, &custom) || custom.StatusCode != StatusBadRequest {
		t.Errorf("Lỗi phải là *Error với status 400, nhận %v", err)
	}
}
