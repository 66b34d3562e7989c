// Package storage cung cấp client upload file lên Firebase Storage.
// Dùng cho file demo của lead, logo dự án và file của client trong dự án.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"

	"agency_portal/internal/logger"
)

// ProgressFunc nhận số byte đã upload và tổng số byte (tổng = -1 nếu không biết).
type ProgressFunc func(done, total int64)

// Client bọc bucket Firebase Storage mặc định.
type Client struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewClient lấy bucket mặc định từ Firebase app.
// bucketName phải là bucket đã cấu hình (ví dụ "<project>.appspot.com").
func NewClient(ctx context.Context, app *firebase.App, bucketName string) (*Client, error) {
	if app == nil {
		return nil, fmt.Errorf("firebase app chưa được khởi tạo")
	}
	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo storage client: %w", err)
	}
	bucket, err := storageClient.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("không thể lấy bucket %s: %w", bucketName, err)
	}
	return &Client{bucket: bucket, bucketName: bucketName}, nil
}

// Upload ghi nội dung từ r lên object path và trả về download URL.
func (c *Client) Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	return c.UploadWithProgress(ctx, path, r, -1, contentType, nil)
}

// UploadWithProgress upload kèm callback tiến độ.
// total là kích thước dự kiến (-1 nếu không biết); progress có thể nil.
func (c *Client) UploadWithProgress(ctx context.Context, path string, r io.Reader, total int64, contentType string, progress ProgressFunc) (string, error) {
	if path == "" {
		return "", fmt.Errorf("đường dẫn object không được để trống")
	}

	// Token download kiểu Firebase: client web truy cập qua URL có token
	token := uuid.NewString()

	obj := c.bucket.Object(path)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}

	src := r
	if progress != nil {
		src = &progressReader{r: r, total: total, progress: progress}
	}

	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s thất bại: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("hoàn tất upload %s thất bại: %w", path, err)
	}

	logger.GetAppLogger().Debugf("Đã upload object %s lên bucket %s", path, c.bucketName)
	return c.downloadURL(path, token), nil
}

// Delete xóa object theo path. Object không tồn tại không bị coi là lỗi.
func (c *Client) Delete(ctx context.Context, path string) error {
	err := c.bucket.Object(path).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("xóa object %s thất bại: %w", path, err)
	}
	return nil
}

// downloadURL tạo URL download kiểu Firebase Storage với token.
func (c *Client) downloadURL(path, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		c.bucketName,
		url.PathEscape(path),
		token,
	)
}

// progressReader đếm số byte đã đọc và gọi callback tiến độ.
type progressReader struct {
	r        io.Reader
	done     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.done += int64(n)
		p.progress(p.done, p.total)
	}
	return n, err
}
