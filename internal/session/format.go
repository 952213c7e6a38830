package session

import "fmt"

// FallbackPlayTime is shown for totals that cannot be displayed.
const FallbackPlayTime = "0小时0分0秒"

// FormatPlayTime renders seconds as hours, minutes and seconds. Hours do not
// roll over into days.
func FormatPlayTime(seconds int64) string {
	if seconds < 0 {
		return FallbackPlayTime
	}

	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60
	return fmt.Sprintf("%d小时%d分%d秒", hours, minutes, secs)
}
