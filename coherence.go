package main

// ========== 行程一致性檢核 ==========
// 入口只有兩個：validateTrip (唯讀檢核，必要時附上修復副本) 與
// validateAndFix (永遠回傳按時間排序、盡力修復過的行程)。

// maxRepairRounds 修復回合上限。原始行為是一回合修復加一次重驗，
// 殘留的問題直接回報呼叫端；調高這個值可以逼近不動點。
var maxRepairRounds = 1

// runDetectors 對每一天跑全部偵測器 (含第一天/最後一天旗標)，
// 再跑一次全行程的重複景點偵測，最後依嚴重度分成 errors / warnings。
func runDetectors(t Trip) (errors, warnings []Finding) {
	last := len(t.Plan)
	partition := func(fs []Finding) {
		for _, f := range fs {
			if f.Severity == SeverityCritical {
				errors = append(errors, f)
			} else {
				warnings = append(warnings, f)
			}
		}
	}

	for _, day := range t.Plan {
		items := sortedByStart(day.Items)
		n := day.DayIndex
		// 順序有意義：抵達/離開的定錨要先於重疊位移
		partition(detectSequencing(n, items, n == 1, n == last))
		partition(detectOverlaps(n, items))
		partition(detectUnrealisticHours(n, items))
		partition(detectGenericActivities(n, items))
		partition(detectMealOrder(n, items))
	}
	partition(detectDuplicateActivities(t.Plan))
	return errors, warnings
}

// validateTrip 唯讀檢核。有 critical 錯誤時在深拷貝上修復並附上結果；
// 修復後殘留的問題放進 Residual 回報，不再重試。
func validateTrip(t Trip) ValidationResult {
	errors, warnings := runDetectors(t)
	res := ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
	if res.Valid {
		return res
	}

	fixed := cloneTrip(t)
	curErrors, curWarnings := errors, warnings
	var repairs []RepairAction
	for round := 0; round < maxRepairRounds; round++ {
		findings := make([]Finding, 0, len(curErrors)+len(curWarnings))
		findings = append(findings, curErrors...)
		findings = append(findings, curWarnings...)
		repairs = append(repairs, repairTrip(&fixed, findings)...)

		curErrors, curWarnings = runDetectors(fixed)
		if len(curErrors) == 0 {
			break
		}
	}

	res.Repaired = &fixed
	res.Repairs = repairs
	res.Residual = append(append([]Finding{}, curErrors...), curWarnings...)
	return res
}

// validateAndFix 便利入口：就算行程本來就有效，也一律回傳
// 依時間排序過的深拷貝；修不完的問題照樣回傳部分修復的結果，不會失敗。
func validateAndFix(t Trip) Trip {
	fixed := cloneTrip(t)
	resortTrip(&fixed)

	res := validateTrip(fixed)
	if res.Repaired != nil {
		return *res.Repaired
	}

	// 沒有 critical 時檢核不會啟動修復，可自動修的 warning 在這裡收掉
	var fixable []Finding
	for _, w := range res.Warnings {
		if w.AutoFixable {
			fixable = append(fixable, w)
		}
	}
	if len(fixable) > 0 {
		repairTrip(&fixed, fixable)
	}
	return fixed
}
