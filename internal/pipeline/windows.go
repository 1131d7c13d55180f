package pipeline

import (
	"fmt"

	"github.com/theirongolddev/endow/internal/model"
)

// Windows partitions records into consecutive tables of size years:
// 1..size, size+1..2*size, and so on. Window k is titled by its upper
// threshold ("10 Year Growth") and lists only the years that exist, so a
// 12-year projection yields 1-5, 6-10 and 11-12.
func Windows(records []model.YearRecord, size int) []model.Window {
	if size <= 0 || len(records) == 0 {
		return nil
	}

	var windows []model.Window
	for _, r := range records {
		idx := (r.Year - 1) / size
		for len(windows) <= idx {
			k := len(windows)
			windows = append(windows, model.Window{
				Title: fmt.Sprintf("%d Year Growth", (k+1)*size),
				From:  k*size + 1,
				To:    (k + 1) * size,
			})
		}
		windows[idx].Years = append(windows[idx].Years, r)
	}

	// Drop windows that received no years and clamp To to the last year shown.
	n := 0
	for _, w := range windows {
		if len(w.Years) == 0 {
			continue
		}
		w.To = w.Years[len(w.Years)-1].Year
		windows[n] = w
		n++
	}
	return windows[:n]
}
