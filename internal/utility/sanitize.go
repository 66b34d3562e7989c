package utility

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// richTextPolicy cho phép một tập thẻ định dạng an toàn trong nội dung rich text
// (mô tả dự án, nội dung ticket). Mọi script, iframe và thuộc tính event đều bị loại bỏ.
var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "u", "ul", "ol", "li", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}()

// SanitizeText escape toàn bộ ký tự HTML trong chuỗi văn bản thuần.
// Áp dụng cho mọi trường chuỗi do người dùng nhập trước khi ghi xuống database.
func SanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// SanitizeRichText lọc nội dung rich text qua allow-list, giữ lại thẻ định dạng an toàn.
func SanitizeRichText(s string) string {
	return richTextPolicy.Sanitize(strings.TrimSpace(s))
}

// SanitizeTextSlice escape từng phần tử trong slice chuỗi.
func SanitizeTextSlice(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = SanitizeText(v)
	}
	return result
}
