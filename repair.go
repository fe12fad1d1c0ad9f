package main

import (
	"fmt"
	"log"
	"sort"
)

// ========== 自動修復引擎 ==========
// 只在 Trip 的深拷貝上動手，呼叫端的原始 Trip 永遠不被改動。
// 每種 Finding 對應一個修復策略；修復前都先重新確認違規仍然存在，
// 前面的修復可能已經順帶解掉後面的。

const (
	arrivalShiftGap = 30      // 抵達邊界之後的緩衝 (分鐘)
	overlapShiftGap = 15      // 重疊位移的緩衝 (分鐘)
	lateCutoff      = 23 * 60 // 超過 23:00 的項目塞不下，直接刪除
	earliestContent = 8 * 60  // 內容項目重排後不得早於 08:00
)

// cloneTrip Trip 聚合的深拷貝；Day 與 Item 都是純值，逐層複製即可
func cloneTrip(t Trip) Trip {
	out := t
	out.Preferences.Types = append([]string(nil), t.Preferences.Types...)
	out.Preferences.Transport = append([]string(nil), t.Preferences.Transport...)
	out.Preferences.Dining = append([]string(nil), t.Preferences.Dining...)
	out.Plan = make([]Day, len(t.Plan))
	for i, day := range t.Plan {
		d := day
		d.Items = make([]Item, len(day.Items))
		copy(d.Items, day.Items)
		out.Plan[i] = d
	}
	return out
}

func dayByNumber(t *Trip, n int) *Day {
	for i := range t.Plan {
		if t.Plan[i].DayIndex == n {
			return &t.Plan[i]
		}
	}
	return nil
}

// itemByID 回傳 nil 表示該項目已被先前的修復刪除
func itemByID(day *Day, id string) *Item {
	for i := range day.Items {
		if day.Items[i].ID == id {
			return &day.Items[i]
		}
	}
	return nil
}

func removeItemByID(day *Day, id string) bool {
	for i := range day.Items {
		if day.Items[i].ID == id {
			day.Items = append(day.Items[:i], day.Items[i+1:]...)
			return true
		}
	}
	return false
}

// resortTrip 全部修完後：每天依開始時間重排，並重編 0 起始的顯示順序
func resortTrip(t *Trip) {
	for d := range t.Plan {
		day := &t.Plan[d]
		sort.SliceStable(day.Items, func(i, j int) bool {
			return day.Items[i].startMin() < day.Items[j].startMin()
		})
		for i := range day.Items {
			day.Items[i].Order = i
		}
	}
}

// repairTrip 依 Finding 順序套用修復策略，最後重排。
// 回傳實際執行的動作清單 (含因塞不下而刪除的項目，刪除不是錯誤，是記錄)。
func repairTrip(t *Trip, findings []Finding) []RepairAction {
	var actions []RepairAction
	reordered := make(map[int]bool) // 每天的交通重排最多做一次

	for _, f := range findings {
		if !f.AutoFixable {
			continue
		}
		switch f.Kind {
		case KindActivityBeforeArrival:
			actions = append(actions, fixShiftAfterReference(t, f)...)
		case KindOverlap:
			actions = append(actions, fixOverlap(t, f)...)
		case KindIllogicalSequence, KindTransferAfterActivity, KindCheckinBeforeTransfer, KindCheckoutAfterTransfer:
			if !reordered[f.DayNumber] {
				reordered[f.DayNumber] = true
				actions = append(actions, fixLogisticsOrder(t, f.DayNumber)...)
			}
		case KindDuplicateActivity:
			actions = append(actions, fixRemove(t, f, "duplicate activity")...)
		case KindGenericActivity:
			actions = append(actions, fixRemove(t, f, "generic filler activity")...)
		case KindUnrealisticHour:
			actions = append(actions, fixRemove(t, f, "unrealistic start hour")...)
		case KindMealOrder:
			actions = append(actions, fixMealOrder(t, f)...)
		case KindActivityAfterDeparture:
			actions = append(actions, fixFitBeforeDeparture(t, f)...)
		}
	}

	resortTrip(t)
	return actions
}

// fixShiftAfterReference 把違規項目移到參照項目結束後 30 分鐘，長度不變；
// 新的結束時間超過 23:00 就刪除 (不跨日)。
func fixShiftAfterReference(t *Trip, f Finding) []RepairAction {
	day := dayByNumber(t, f.DayNumber)
	if day == nil || len(f.ItemIDs) < 2 {
		return nil
	}
	violator := itemByID(day, f.ItemIDs[0])
	ref := itemByID(day, f.ItemIDs[1])
	if violator == nil || ref == nil {
		return nil
	}
	refEnd := ref.endMin()
	if violator.startMin() >= refEnd {
		return nil // 先前的修復已經解掉了
	}

	newStart := refEnd + arrivalShiftGap
	dur := max(0, violator.DurationMin)
	if newStart+dur > lateCutoff {
		title := violator.Title
		removeItemByID(day, violator.ID)
		log.Printf("repair: removed %q (day %d), no slot before 23:00", title, f.DayNumber)
		return []RepairAction{{
			Kind: f.Kind, DayNumber: f.DayNumber, ItemID: f.ItemIDs[0], Title: title,
			Action: "removed", Detail: "no slot before 23:00",
		}}
	}
	violator.Time = toTime(newStart)
	return []RepairAction{{
		Kind: f.Kind, DayNumber: f.DayNumber, ItemID: violator.ID, Title: violator.Title,
		Action: "shifted", Detail: fmt.Sprintf("moved to %s, after %q", violator.Time, ref.Title),
	}}
}

// fixOverlap 兩項重疊時，較晚開始的移到較早者結束後 15 分鐘
func fixOverlap(t *Trip, f Finding) []RepairAction {
	day := dayByNumber(t, f.DayNumber)
	if day == nil || len(f.ItemIDs) < 2 {
		return nil
	}
	a := itemByID(day, f.ItemIDs[0])
	b := itemByID(day, f.ItemIDs[1])
	if a == nil || b == nil {
		return nil
	}
	earlier, later := a, b
	if later.startMin() < earlier.startMin() {
		earlier, later = later, earlier
	}
	if !(earlier.startMin() < later.endMin() && later.startMin() < earlier.endMin()) {
		return nil // 已不重疊
	}

	newStart := earlier.endMin() + overlapShiftGap
	dur := max(0, later.DurationMin)
	if newStart+dur > lateCutoff {
		title := later.Title
		id := later.ID
		removeItemByID(day, id)
		log.Printf("repair: removed %q (day %d), no slot before 23:00", title, f.DayNumber)
		return []RepairAction{{
			Kind: f.Kind, DayNumber: f.DayNumber, ItemID: id, Title: title,
			Action: "removed", Detail: "no slot before 23:00",
		}}
	}
	later.Time = toTime(newStart)
	return []RepairAction{{
		Kind: f.Kind, DayNumber: f.DayNumber, ItemID: later.ID, Title: later.Title,
		Action: "shifted", Detail: fmt.Sprintf("moved to %s, after %q", later.Time, earlier.Title),
	}}
}

// fixRemove 項目整個刪除 (重複景點、罐頭行程、不合理時段)
func fixRemove(t *Trip, f Finding, reason string) []RepairAction {
	day := dayByNumber(t, f.DayNumber)
	if day == nil || len(f.ItemIDs) < 1 {
		return nil
	}
	it := itemByID(day, f.ItemIDs[0])
	if it == nil {
		return nil
	}
	title := it.Title
	removeItemByID(day, f.ItemIDs[0])
	log.Printf("repair: removed %q (day %d), %s", title, f.DayNumber, reason)
	return []RepairAction{{
		Kind: f.Kind, DayNumber: f.DayNumber, ItemID: f.ItemIDs[0], Title: title,
		Action: "removed", Detail: reason,
	}}
}

// fixMealOrder 違規的餐別改到標準時段，原本的長度保留
func fixMealOrder(t *Trip, f Finding) []RepairAction {
	day := dayByNumber(t, f.DayNumber)
	if day == nil {
		return nil
	}
	var actions []RepairAction
	for _, id := range f.ItemIDs {
		it := itemByID(day, id)
		if it == nil {
			continue
		}
		start, ok := canonicalMealStart[classifyMeal(*it)]
		if !ok || it.startMin() == start {
			continue
		}
		it.Time = toTime(start)
		actions = append(actions, RepairAction{
			Kind: f.Kind, DayNumber: f.DayNumber, ItemID: it.ID, Title: it.Title,
			Action: "retimed", Detail: fmt.Sprintf("moved to canonical meal slot %s", it.Time),
		})
	}
	return actions
}

// fixFitBeforeDeparture 最後一天：內容項目往前挪到離開邊界之前結束；
// 挪了會早於 08:00 開始就刪除。
func fixFitBeforeDeparture(t *Trip, f Finding) []RepairAction {
	day := dayByNumber(t, f.DayNumber)
	if day == nil || len(f.ItemIDs) < 2 {
		return nil
	}
	violator := itemByID(day, f.ItemIDs[0])
	boundary := itemByID(day, f.ItemIDs[1])
	if violator == nil || boundary == nil {
		return nil
	}
	if violator.endMin() <= boundary.startMin() {
		return nil
	}

	dur := max(0, violator.DurationMin)
	newStart := boundary.startMin() - dur
	if newStart < earliestContent {
		title := violator.Title
		removeItemByID(day, violator.ID)
		log.Printf("repair: removed %q (day %d), cannot fit before departure", title, f.DayNumber)
		return []RepairAction{{
			Kind: f.Kind, DayNumber: f.DayNumber, ItemID: f.ItemIDs[0], Title: title,
			Action: "removed", Detail: "cannot fit before departure",
		}}
	}
	violator.Time = toTime(newStart)
	return []RepairAction{{
		Kind: f.Kind, DayNumber: f.DayNumber, ItemID: violator.ID, Title: violator.Title,
		Action: "shifted", Detail: fmt.Sprintf("moved to %s, before %q", violator.Time, boundary.Title),
	}}
}

// fixLogisticsOrder 第一天 / 最後一天的交通重排：
// 交通項目依固定順位表重排並從原始起點依序接續，
// 內容項目再依新算出的抵達 / 離開邊界重新定錨。
func fixLogisticsOrder(t *Trip, dayNumber int) []RepairAction {
	day := dayByNumber(t, dayNumber)
	if day == nil {
		return nil
	}
	isFirst := dayNumber == 1
	isLast := dayNumber == len(t.Plan)

	var logistics, content []Item
	for _, it := range day.Items {
		if isLogistics(it) {
			logistics = append(logistics, it)
		} else {
			content = append(content, it)
		}
	}
	if len(logistics) == 0 {
		return nil
	}

	// 重排前先記下長途交通的原始開始時間，區分出發端與抵達端接駁
	mainStart := -1
	cursor := logistics[0].startMin()
	for _, it := range logistics {
		if classifyTransport(it) == roleMainTransport && mainStart < 0 {
			mainStart = it.startMin()
		}
		if it.startMin() < cursor {
			cursor = it.startMin()
		}
	}
	// 早於 05:00 視為跨夜運算的殘留值，重設為 08:00
	if cursor < 5*60 {
		cursor = 8 * 60
	}

	rank := func(it Item) int {
		if isLast && !isFirst {
			return logisticsRankLastDay(it)
		}
		return logisticsRankFirstDay(it, mainStart)
	}
	sort.SliceStable(logistics, func(i, j int) bool {
		return rank(logistics[i]) < rank(logistics[j])
	})

	// 依順位從游標依序接續
	for i := range logistics {
		logistics[i].Time = toTime(cursor)
		cursor += max(0, logistics[i].DurationMin)
	}

	actions := []RepairAction{{
		Kind: KindIllogicalSequence, DayNumber: dayNumber,
		Action: "reordered", Detail: fmt.Sprintf("replayed %d logistics items from %s", len(logistics), logistics[0].Time),
	}}

	// 重新計算邊界
	var arrivalEnd, departureStart = -1, -1
	for _, it := range logistics {
		role := classifyTransport(it)
		if isFirst {
			if role == roleMainTransport {
				arrivalEnd = it.endMin()
			} else if role == roleLocalTransfer && arrivalEnd < 0 {
				arrivalEnd = it.endMin()
			}
		}
		if isLast && !isFirst {
			if role == roleLocalTransfer && departureStart < 0 {
				departureStart = it.startMin()
			} else if role == roleMainTransport && departureStart < 0 {
				departureStart = it.startMin()
			}
		}
	}

	// 內容項目重新定錨
	content = sortedByStart(content)
	kept := make([]Item, 0, len(content))
	if isFirst && arrivalEnd >= 0 {
		contentCursor := arrivalEnd
		for _, it := range content {
			if it.startMin() >= contentCursor {
				kept = append(kept, it)
				if it.endMin() > contentCursor {
					contentCursor = it.endMin()
				}
				continue
			}
			newStart := contentCursor + arrivalShiftGap
			dur := max(0, it.DurationMin)
			if newStart+dur > lateCutoff {
				log.Printf("repair: removed %q (day %d), no slot before 23:00 after reorder", it.Title, dayNumber)
				actions = append(actions, RepairAction{
					Kind: KindActivityBeforeArrival, DayNumber: dayNumber, ItemID: it.ID, Title: it.Title,
					Action: "removed", Detail: "no slot before 23:00 after reorder",
				})
				continue
			}
			it.Time = toTime(newStart)
			contentCursor = newStart + dur
			kept = append(kept, it)
			actions = append(actions, RepairAction{
				Kind: KindActivityBeforeArrival, DayNumber: dayNumber, ItemID: it.ID, Title: it.Title,
				Action: "shifted", Detail: fmt.Sprintf("re-anchored to %s after arrival", it.Time),
			})
		}
	} else if isLast && departureStart >= 0 {
		backCursor := departureStart
		for i := len(content) - 1; i >= 0; i-- {
			it := content[i]
			if it.endMin() <= backCursor {
				kept = append(kept, it)
				continue
			}
			dur := max(0, it.DurationMin)
			newStart := backCursor - dur
			if newStart < earliestContent {
				log.Printf("repair: removed %q (day %d), cannot fit before departure", it.Title, dayNumber)
				actions = append(actions, RepairAction{
					Kind: KindActivityAfterDeparture, DayNumber: dayNumber, ItemID: it.ID, Title: it.Title,
					Action: "removed", Detail: "cannot fit before departure",
				})
				continue
			}
			it.Time = toTime(newStart)
			backCursor = newStart
			kept = append(kept, it)
			actions = append(actions, RepairAction{
				Kind: KindActivityAfterDeparture, DayNumber: dayNumber, ItemID: it.ID, Title: it.Title,
				Action: "shifted", Detail: fmt.Sprintf("re-anchored to %s before departure", it.Time),
			})
		}
	} else {
		kept = content
	}

	day.Items = append(logistics, kept...)
	return actions
}
