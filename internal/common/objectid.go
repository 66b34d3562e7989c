package common

import "go.mongodb.org/mongo-driver/bson/primitive"

// ObjectIDFromParam chuyển chuỗi hex từ URL param thành ObjectID,
// trả lỗi validation nếu sai định dạng.
func ObjectIDFromParam(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, NewError(
			ErrCodeValidationFormat,
			"ID không hợp lệ",
			StatusBadRequest,
			id,
		)
	}
	return oid, nil
}
