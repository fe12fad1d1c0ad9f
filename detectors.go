package main

import (
	"fmt"
	"sort"
)

// ========== 規則偵測 ==========
// 每個偵測器都是純函數：吃 (dayNumber, 依開始時間排序的 items)，回傳零到多筆 Finding，
// 不改動輸入。每日項目數大約 5~15，O(n²) 的兩兩比對可以接受。

// sortedByStart 回傳依開始時間排序的複本，原 slice 不動
func sortedByStart(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].startMin() < out[j].startMin()
	})
	return out
}

// detectOverlaps 兩兩檢查時間重疊
func detectOverlaps(dayNumber int, items []Item) []Finding {
	var findings []Finding
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.startMin() < b.endMin() && b.startMin() < a.endMin() {
				findings = append(findings, Finding{
					Kind:      KindOverlap,
					DayNumber: dayNumber,
					Message: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s)",
						a.Title, toTime(a.startMin()), toTime(a.endMin()),
						b.Title, toTime(b.startMin()), toTime(b.endMin())),
					ItemIDs:     []string{a.ID, b.ID},
					ItemTitles:  []string{a.Title, b.Title},
					Severity:    SeverityCritical,
					AutoFixable: true,
				})
			}
		}
	}
	return findings
}

// detectUnrealisticHours 內容項目不得在 [00:00, 07:00) 開始
func detectUnrealisticHours(dayNumber int, items []Item) []Finding {
	var findings []Finding
	for _, it := range items {
		if !isContent(it) {
			continue
		}
		start := it.startMin()
		if start >= 0 && start < 7*60 {
			findings = append(findings, Finding{
				Kind:        KindUnrealisticHour,
				DayNumber:   dayNumber,
				Message:     fmt.Sprintf("%q starts at %s, before 07:00", it.Title, toTime(start)),
				ItemIDs:     []string{it.ID},
				ItemTitles:  []string{it.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}
	}
	return findings
}

// detectGenericActivities 比對罐頭行程表
func detectGenericActivities(dayNumber int, items []Item) []Finding {
	var findings []Finding
	for _, it := range items {
		if isGenericActivity(it) {
			findings = append(findings, Finding{
				Kind:        KindGenericActivity,
				DayNumber:   dayNumber,
				Message:     fmt.Sprintf("%q matches a known filler-activity pattern", it.Title),
				ItemIDs:     []string{it.ID},
				ItemTitles:  []string{it.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}
	}
	return findings
}

// detectDuplicateActivities 全行程範圍：同名景點 (正規化後) 第二次出現就標記
func detectDuplicateActivities(plan []Day) []Finding {
	var findings []Finding
	firstSeen := make(map[string]int) // 正規化標題 → 第一次出現的天數
	for _, day := range plan {
		for _, it := range sortedByStart(day.Items) {
			if it.Type != TypeActivity {
				continue
			}
			key := normTitle(it.Title)
			if key == "" {
				continue
			}
			if first, ok := firstSeen[key]; ok {
				findings = append(findings, Finding{
					Kind:      KindDuplicateActivity,
					DayNumber: day.DayIndex,
					Message: fmt.Sprintf("%q on day %d already appears on day %d",
						it.Title, day.DayIndex, first),
					ItemIDs:     []string{it.ID},
					ItemTitles:  []string{it.Title},
					FirstDay:    first,
					Severity:    SeverityWarning,
					AutoFixable: true,
				})
			} else {
				firstSeen[key] = day.DayIndex
			}
		}
	}
	return findings
}

// detectMealOrder 早餐 ≤ 午餐 ≤ 晚餐
func detectMealOrder(dayNumber int, items []Item) []Finding {
	var breakfast, lunch, dinner *Item
	for i := range items {
		it := items[i]
		switch classifyMeal(it) {
		case mealBreakfast:
			if breakfast == nil {
				breakfast = &items[i]
			}
		case mealLunch:
			if lunch == nil {
				lunch = &items[i]
			}
		case mealDinner:
			if dinner == nil {
				dinner = &items[i]
			}
		}
	}

	var findings []Finding
	if breakfast != nil && lunch != nil && breakfast.startMin() > lunch.startMin() {
		findings = append(findings, Finding{
			Kind:      KindMealOrder,
			DayNumber: dayNumber,
			Message: fmt.Sprintf("breakfast %q (%s) starts after lunch %q (%s)",
				breakfast.Title, toTime(breakfast.startMin()), lunch.Title, toTime(lunch.startMin())),
			ItemIDs:     []string{breakfast.ID, lunch.ID},
			ItemTitles:  []string{breakfast.Title, lunch.Title},
			Severity:    SeverityWarning,
			AutoFixable: true,
		})
	}
	if lunch != nil && dinner != nil && lunch.startMin() > dinner.startMin() {
		findings = append(findings, Finding{
			Kind:      KindMealOrder,
			DayNumber: dayNumber,
			Message: fmt.Sprintf("lunch %q (%s) starts after dinner %q (%s)",
				lunch.Title, toTime(lunch.startMin()), dinner.Title, toTime(dinner.startMin())),
			ItemIDs:     []string{lunch.ID, dinner.ID},
			ItemTitles:  []string{lunch.Title, dinner.Title},
			Severity:    SeverityWarning,
			AutoFixable: true,
		})
	}
	return findings
}

// ========== 抵達 / 離開順序 ==========

// arrivalChain 第一天的交通鏈：長途交通 + 抵達後接駁
type arrivalChain struct {
	main     *Item // 長途交通 (航班或城際)
	transfer *Item // 抵達後接駁 (機場/車站 → 旅宿)
	checkin  *Item // 旅宿 check-in
}

func findArrivalChain(items []Item) arrivalChain {
	var chain arrivalChain
	for i := range items {
		if chain.main == nil && classifyTransport(items[i]) == roleMainTransport {
			chain.main = &items[i]
		}
	}
	for i := range items {
		it := items[i]
		switch {
		case classifyTransport(it) == roleLocalTransfer:
			// 長途交通之前的接駁是出發端 (住家→機場)，不算抵達接駁
			if chain.transfer == nil {
				if chain.main == nil || it.startMin() >= chain.main.startMin() {
					chain.transfer = &items[i]
				}
			}
		case it.Type == TypeHotelCheckin && !isAirportCheckin(it):
			if chain.checkin == nil {
				chain.checkin = &items[i]
			}
		}
	}
	return chain
}

// departureChain 最後一天的交通鏈：checkout → 接駁 → 長途交通
type departureChain struct {
	checkout *Item
	transfer *Item
	main     *Item
}

func findDepartureChain(items []Item) departureChain {
	var chain departureChain
	for i := range items {
		it := items[i]
		switch {
		case it.Type == TypeHotelCheckout:
			if chain.checkout == nil {
				chain.checkout = &items[i]
			}
		case classifyTransport(it) == roleLocalTransfer:
			if chain.transfer == nil {
				chain.transfer = &items[i]
			}
		case classifyTransport(it) == roleMainTransport:
			if chain.main == nil {
				chain.main = &items[i]
			}
		}
	}
	return chain
}

// detectSequencing 第一天 / 最後一天的交通與內容順序檢查。
// 旅宿 check-in 刻意不算進「內容必須在其後」的邊界：
// 旅客常在正式入住時間前先逛景點。
func detectSequencing(dayNumber int, items []Item, isFirst, isLast bool) []Finding {
	var findings []Finding

	if isFirst {
		chain := findArrivalChain(items)

		// 抵達邊界：長途交通結束時間，沒有的話用接駁結束時間
		var boundary *Item
		if chain.main != nil {
			boundary = chain.main
		} else if chain.transfer != nil {
			boundary = chain.transfer
		}

		if boundary != nil {
			for _, it := range items {
				if !isContent(it) {
					continue
				}
				if it.startMin() < boundary.endMin() {
					findings = append(findings, Finding{
						Kind:      KindActivityBeforeArrival,
						DayNumber: dayNumber,
						Message: fmt.Sprintf("%q starts at %s but arrival logistics %q only ends at %s",
							it.Title, toTime(it.startMin()), boundary.Title, toTime(boundary.endMin())),
						ItemIDs:     []string{it.ID, boundary.ID},
						ItemTitles:  []string{it.Title, boundary.Title},
						Severity:    SeverityCritical,
						AutoFixable: true,
					})
				}
			}
		}

		// 接駁不能在它所銜接的長途交通結束前開始
		if chain.main != nil && chain.transfer != nil && chain.transfer.startMin() < chain.main.endMin() {
			findings = append(findings, Finding{
				Kind:      KindIllogicalSequence,
				DayNumber: dayNumber,
				Message: fmt.Sprintf("transfer %q starts at %s, before %q ends at %s",
					chain.transfer.Title, toTime(chain.transfer.startMin()),
					chain.main.Title, toTime(chain.main.endMin())),
				ItemIDs:     []string{chain.transfer.ID, chain.main.ID},
				ItemTitles:  []string{chain.transfer.Title, chain.main.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}

		// 旅宿 check-in 不能在抵達接駁結束前
		if chain.checkin != nil && chain.transfer != nil && chain.checkin.startMin() < chain.transfer.endMin() {
			findings = append(findings, Finding{
				Kind:      KindCheckinBeforeTransfer,
				DayNumber: dayNumber,
				Message: fmt.Sprintf("check-in %q starts at %s, before transfer %q ends at %s",
					chain.checkin.Title, toTime(chain.checkin.startMin()),
					chain.transfer.Title, toTime(chain.transfer.endMin())),
				ItemIDs:     []string{chain.checkin.ID, chain.transfer.ID},
				ItemTitles:  []string{chain.checkin.Title, chain.transfer.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}

		// 長途交通已結束、抵達接駁卻排在內容項目之後
		if chain.main != nil && chain.transfer != nil {
			for _, it := range items {
				if !isContent(it) {
					continue
				}
				if it.startMin() >= chain.main.endMin() && it.startMin() < chain.transfer.startMin() {
					findings = append(findings, Finding{
						Kind:      KindTransferAfterActivity,
						DayNumber: dayNumber,
						Message: fmt.Sprintf("transfer %q is scheduled after activity %q",
							chain.transfer.Title, it.Title),
						ItemIDs:     []string{chain.transfer.ID, it.ID},
						ItemTitles:  []string{chain.transfer.Title, it.Title},
						Severity:    SeverityCritical,
						AutoFixable: true,
					})
					break
				}
			}
		}
	}

	if isLast {
		chain := findDepartureChain(items)

		// 內容邊界：接駁開始時間，沒有的話用長途交通開始時間。
		// checkout 本身不設限，內容項目可以排在 checkout 之前。
		var boundary *Item
		if chain.transfer != nil {
			boundary = chain.transfer
		} else if chain.main != nil {
			boundary = chain.main
		}

		if boundary != nil {
			for _, it := range items {
				if !isContent(it) {
					continue
				}
				if it.endMin() > boundary.startMin() {
					findings = append(findings, Finding{
						Kind:      KindActivityAfterDeparture,
						DayNumber: dayNumber,
						Message: fmt.Sprintf("%q ends at %s but departure logistics %q starts at %s",
							it.Title, toTime(it.endMin()), boundary.Title, toTime(boundary.startMin())),
						ItemIDs:     []string{it.ID, boundary.ID},
						ItemTitles:  []string{it.Title, boundary.Title},
						Severity:    SeverityCritical,
						AutoFixable: true,
					})
				}
			}
		}

		// checkout 必須在離開接駁之前
		if chain.checkout != nil && chain.transfer != nil && chain.checkout.startMin() > chain.transfer.startMin() {
			findings = append(findings, Finding{
				Kind:      KindCheckoutAfterTransfer,
				DayNumber: dayNumber,
				Message: fmt.Sprintf("checkout %q starts at %s, after transfer %q at %s",
					chain.checkout.Title, toTime(chain.checkout.startMin()),
					chain.transfer.Title, toTime(chain.transfer.startMin())),
				ItemIDs:     []string{chain.checkout.ID, chain.transfer.ID},
				ItemTitles:  []string{chain.checkout.Title, chain.transfer.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}

		// 接駁必須在長途交通之前
		if chain.transfer != nil && chain.main != nil && chain.transfer.startMin() > chain.main.startMin() {
			findings = append(findings, Finding{
				Kind:      KindIllogicalSequence,
				DayNumber: dayNumber,
				Message: fmt.Sprintf("transfer %q starts at %s, after %q at %s",
					chain.transfer.Title, toTime(chain.transfer.startMin()),
					chain.main.Title, toTime(chain.main.startMin())),
				ItemIDs:     []string{chain.transfer.ID, chain.main.ID},
				ItemTitles:  []string{chain.transfer.Title, chain.main.Title},
				Severity:    SeverityCritical,
				AutoFixable: true,
			})
		}
	}

	return findings
}
