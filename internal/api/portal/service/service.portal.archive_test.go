package portalsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	portalmodels "agency_portal/internal/api/portal/models"
)

func TestBuildRestoreDocumentRoundTrip(t *testing.T) {
	originalID := primitive.NewObjectID()
	record := &portalmodels.ArchivedRecord{
		OriginalType: portalmodels.ArchivedTypeLead,
		OriginalID:   originalID.Hex(),
		CompanyName:  "Công ty A",
		OriginalData: map[string]interface{}{
			"companyName": "Công ty A",
			"clientName":  "Anh B",
			"status":      "demo-sent",
			"createdAt":   int64(100),
			"updatedAt":   int64(200),
		},
		ArchivedAt: 300,
	}

	now := int64(500)
	data := buildRestoreDocument(record, now)

	// Các trường nghiệp vụ round-trip nguyên vẹn
	for _, key := range []string{"companyName", "clientName", "status", "createdAt"} {
		if data[key] != record.OriginalData[key] {
			t.Errorf("Trường %s phải giữ nguyên, muốn %v nhận %v", key, record.OriginalData[key], data[key])
		}
	}

	if got, ok := data["_id"].(primitive.ObjectID); !ok || got != originalID {
		t.Errorf("_id phải là ObjectID gốc %s, nhận %v", originalID.Hex(), data["_id"])
	}

	if data["restoredAt"] != now || data["updatedAt"] != now {
		t.Errorf("restoredAt/updatedAt phải bằng thời điểm khôi phục %d, nhận %v / %v",
			now, data["restoredAt"], data["updatedAt"])
	}
	if createdAt := data["createdAt"].(int64); createdAt > data["updatedAt"].(int64) {
		t.Errorf("createdAt (%d) không được lớn hơn updatedAt (%v)", createdAt, data["updatedAt"])
	}

	// Snapshot trong bản ghi lưu trữ không được bị sửa
	if record.OriginalData["updatedAt"] != int64(200) {
		t.Errorf("OriginalData không được bị sửa, updatedAt nhận %v", record.OriginalData["updatedAt"])
	}
	if _, exists := record.OriginalData["restoredAt"]; exists {
		t.Error("OriginalData không được nhận thêm restoredAt")
	}
}

func TestBuildRestoreDocumentInvalidOriginalID(t *testing.T) {
	record := &portalmodels.ArchivedRecord{
		OriginalType: portalmodels.ArchivedTypeProject,
		OriginalID:   "khong-phai-objectid",
		OriginalData: map[string]interface{}{"companyName": "Công ty C"},
	}

	data := buildRestoreDocument(record, 42)
	if _, exists := data["_id"]; exists {
		t.Error("OriginalID không hợp lệ thì không được gán _id, để Mongo tự sinh")
	}
	if data["companyName"] != "Công ty C" {
		t.Errorf("Trường nghiệp vụ phải giữ nguyên, nhận %v", data["companyName"])
	}
}
