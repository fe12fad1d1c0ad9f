package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// ========== 時間工具 ==========

// toMinutes 把 "HH:MM" 轉成當日分鐘數。
// 上游資料常有缺漏，解析不了的欄位一律當 0，不回傳錯誤。
func toMinutes(t string) int {
	parts := strings.Split(t, ":")
	h, m := 0, 0
	if len(parts) > 0 {
		h, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return h*60 + m
}

// toTime 把分鐘數轉回 "HH:MM"。
// 修復運算可能算出負數或超過 24 小時的值，輸出前必須夾回 [00:00, 23:59]。
func toTime(min int) string {
	if min < 0 {
		log.Printf("toTime: clamping %d to 0", min)
		min = 0
	}
	if min > 1439 {
		log.Printf("toTime: clamping %d to 1439", min)
		min = 1439
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
