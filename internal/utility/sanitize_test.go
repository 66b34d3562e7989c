package utility

import (
	"strings"
	"testing"
)

func TestSanitizeTextEscapesHTML(t *testing.T) {
	got := SanitizeText("  <script>alert(1)</script>  ")
	if strings.Contains(got, "<script>") {
		t.Errorf("SanitizeText phải escape thẻ HTML, nhận %q", got)
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Errorf("SanitizeText phải trim khoảng trắng, nhận %q", got)
	}
}

func TestSanitizeRichTextKeepsFormatting(t *testing.T) {
	got := SanitizeRichText("<p>Xin chào <b>anh</b></p><script>alert(1)</script>")
	if !strings.Contains(got, "<b>anh</b>") {
		t.Errorf("SanitizeRichText phải giữ thẻ định dạng an toàn, nhận %q", got)
	}
	if strings.Contains(got, "script") {
		t.Errorf("SanitizeRichText phải loại bỏ script, nhận %q", got)
	}
}

func TestSanitizeRichTextStripsEventAttrs(t *testing.T) {
	got := SanitizeRichText(`<p onclick="steal()">nội dung</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("SanitizeRichText phải loại bỏ thuộc tính event, nhận %q", got)
	}
	if !strings.Contains(got, "nội dung") {
		t.Errorf("SanitizeRichText phải giữ nội dung văn bản, nhận %q", got)
	}
}

func TestSanitizeTextSlice(t *testing.T) {
	if SanitizeTextSlice(nil) != nil {
		t.Error("SanitizeTextSlice(nil) phải trả về nil")
	}
	got := SanitizeTextSlice([]string{"<b>a</b>", " b "})
	if len(got) != 2 {
		t.Fatalf("SanitizeTextSlice phải giữ số phần tử, nhận %d", len(got))
	}
	if strings.Contains(got[0], "<b>") {
		t.Errorf("Phần tử phải được escape, nhận %q", got[0])
	}
	if got[1] != "b" {
		t.Errorf("Phần tử phải được trim, nhận %q", got[1])
	}
}
