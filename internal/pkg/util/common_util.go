package util

import "fmt"

// PeriodKey 生成 "YYYY-MM" 形式的周期标识，用于锁、缓存与积分流水 ref
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
