package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatNTD chuyển đổi số tiền (đơn vị đồng Đài tệ) sang chuỗi hiển thị.
// Ví dụ: 1280 -> "NTD 1,280".
func FormatNTD(amount int64) string {
	return fmt.Sprintf("NTD %s", humanize.Comma(amount))
}
