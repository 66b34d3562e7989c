package portaldto

// ListActivityQuery phân trang nhật ký hoạt động, mới nhất trước.
type ListActivityQuery struct {
	Limit int64 `query:"limit" validate:"omitempty,min=1,max=200"` // Mặc định 50
	Page  int64 `query:"page" validate:"omitempty,min=0"`
}

// ListArchivedQuery lọc danh sách record đã archive.
type ListArchivedQuery struct {
	OriginalType string `query:"originalType" validate:"omitempty,oneof=lead project"`
	Limit        int64  `query:"limit" validate:"omitempty,min=1,max=200"`
	Page         int64  `query:"page" validate:"omitempty,min=0"`
}
