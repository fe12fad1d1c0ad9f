package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOverlaps(t *testing.T) {
	items := sortedByStart([]Item{
		{ID: "a", Type: TypeActivity, Title: "Musée", Time: "10:00", DurationMin: 60},
		{ID: "b", Type: TypeActivity, Title: "Marché", Time: "10:30", DurationMin: 60},
		{ID: "c", Type: TypeActivity, Title: "Parc", Time: "12:00", DurationMin: 60},
	})

	findings := detectOverlaps(2, items)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, KindOverlap, f.Kind)
	assert.Equal(t, 2, f.DayNumber)
	assert.Equal(t, []string{"a", "b"}, f.ItemIDs)
	assert.Equal(t, SeverityCritical, f.Severity)
	assert.True(t, f.AutoFixable)
}

func TestDetectOverlapsTouchingIsFine(t *testing.T) {
	// 首尾相接不算重疊
	items := sortedByStart([]Item{
		{ID: "a", Type: TypeActivity, Title: "Musée", Time: "10:00", DurationMin: 60},
		{ID: "b", Type: TypeActivity, Title: "Marché", Time: "11:00", DurationMin: 60},
	})
	assert.Empty(t, detectOverlaps(1, items))
}

func TestDetectUnrealisticHours(t *testing.T) {
	items := []Item{
		{ID: "a", Type: TypeActivity, Title: "Balade nocturne", Time: "03:00", DurationMin: 60},
		{ID: "b", Type: TypeActivity, Title: "Musée", Time: "06:59", DurationMin: 60},
		{ID: "c", Type: TypeActivity, Title: "Marché", Time: "07:00", DurationMin: 60},
		// 凌晨的交通合法 (紅眼航班)
		{ID: "d", Type: TypeFlight, Title: "Vol de nuit", Time: "03:00", DurationMin: 120},
	}

	findings := detectUnrealisticHours(1, items)
	require.Len(t, findings, 2)
	assert.Equal(t, "a", findings[0].ItemIDs[0])
	assert.Equal(t, "b", findings[1].ItemIDs[0])
	for _, f := range findings {
		assert.Equal(t, KindUnrealisticHour, f.Kind)
		assert.Equal(t, SeverityCritical, f.Severity)
	}
}

func TestDetectGenericActivities(t *testing.T) {
	items := []Item{
		{ID: "a", Type: TypeActivity, Title: "Pause café", Time: "15:00", DurationMin: 30},
		{ID: "b", Type: TypeActivity, Title: "Tour Eiffel", Time: "10:00", DurationMin: 120},
	}

	findings := detectGenericActivities(1, items)
	require.Len(t, findings, 1)
	assert.Equal(t, KindGenericActivity, findings[0].Kind)
	assert.Equal(t, "a", findings[0].ItemIDs[0])
}

func TestDetectDuplicateActivities(t *testing.T) {
	plan := []Day{
		{DayIndex: 1, Items: []Item{
			{ID: "a", Type: TypeActivity, Title: "Tour Eiffel", Time: "10:00", DurationMin: 120},
		}},
		{DayIndex: 2, Items: []Item{
			{ID: "b", Type: TypeActivity, Title: "Louvre", Time: "10:00", DurationMin: 120},
		}},
		{DayIndex: 3, Items: []Item{
			// 正規化後同名：大小寫與前後空白不影響
			{ID: "c", Type: TypeActivity, Title: "  tour eiffel ", Time: "14:00", DurationMin: 60},
		}},
	}

	findings := detectDuplicateActivities(plan)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, KindDuplicateActivity, f.Kind)
	assert.Equal(t, 3, f.DayNumber)
	assert.Equal(t, 1, f.FirstDay)
	assert.Equal(t, []string{"c"}, f.ItemIDs)
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.True(t, f.AutoFixable)
}

func TestDetectMealOrder(t *testing.T) {
	items := sortedByStart([]Item{
		{ID: "d", Type: TypeRestaurant, Title: "Dîner", Time: "18:30", DurationMin: 60},
		{ID: "l", Type: TypeRestaurant, Title: "Déjeuner", Time: "19:45", DurationMin: 60},
	})

	findings := detectMealOrder(2, items)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, KindMealOrder, f.Kind)
	assert.Equal(t, []string{"l", "d"}, f.ItemIDs)
	assert.Equal(t, SeverityWarning, f.Severity)
}

func TestDetectMealOrderCorrectDayIsQuiet(t *testing.T) {
	items := sortedByStart([]Item{
		{ID: "b", Type: TypeRestaurant, Title: "Petit déjeuner", Time: "08:00", DurationMin: 45},
		{ID: "l", Type: TypeRestaurant, Title: "Déjeuner", Time: "12:30", DurationMin: 60},
		{ID: "d", Type: TypeRestaurant, Title: "Dîner", Time: "19:30", DurationMin: 90},
	})
	assert.Empty(t, detectMealOrder(1, items))
}

func TestDetectSequencingActivityBeforeArrival(t *testing.T) {
	items := sortedByStart([]Item{
		{ID: "f", Type: TypeFlight, Title: "Vol Paris-Rome", Time: "08:00", DurationMin: 90},
		{ID: "w", Type: TypeActivity, Title: "City Walk", Time: "09:00", DurationMin: 60},
	})

	findings := detectSequencing(1, items, true, false)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, KindActivityBeforeArrival, f.Kind)
	assert.Equal(t, []string{"w", "f"}, f.ItemIDs)
	assert.Equal(t, SeverityCritical, f.Severity)
}

func TestDetectSequencingCheckinExemption(t *testing.T) {
	// 旅宿 check-in 可以晚於觀光：旅客常在入住時間前先逛景點
	items := sortedByStart([]Item{
		{ID: "f", Type: TypeFlight, Title: "Vol Paris-Rome", Time: "06:00", DurationMin: 120},
		{ID: "m", Type: TypeActivity, Title: "Musée", Time: "09:00", DurationMin: 60},
		{ID: "h", Type: TypeHotelCheckin, Title: "Check-in hôtel", Time: "15:00", DurationMin: 15},
	})
	assert.Empty(t, detectSequencing(1, items, true, false))
}

func TestDetectSequencingIllogicalTransfer(t *testing.T) {
	// 接駁不能在它銜接的航班結束前開始
	items := sortedByStart([]Item{
		{ID: "f", Type: TypeFlight, Title: "Vol Paris-Rome", Time: "09:00", DurationMin: 90},
		{ID: "t", Type: TypeTransport, Title: "Transfert aéroport → hôtel", Time: "10:00", DurationMin: 30},
	})

	findings := detectSequencing(1, items, true, false)
	var kinds []FindingKind
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, KindIllogicalSequence)
}

func TestDetectSequencingLastDay(t *testing.T) {
	items := sortedByStart([]Item{
		{ID: "t", Type: TypeTransport, Title: "Navette vers l'aéroport", Time: "09:00", DurationMin: 45},
		{ID: "co", Type: TypeHotelCheckout, Title: "Check-out", Time: "11:00", DurationMin: 30},
		{ID: "f", Type: TypeFlight, Title: "Vol retour", Time: "13:00", DurationMin: 120},
		{ID: "m", Type: TypeActivity, Title: "Musée", Time: "10:00", DurationMin: 120},
	})

	findings := detectSequencing(4, items, false, true)
	var kinds []FindingKind
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	// checkout 排在接駁之後 → 違規；Musée 結束在接駁出發之後 → 違規
	assert.Contains(t, kinds, KindCheckoutAfterTransfer)
	assert.Contains(t, kinds, KindActivityAfterDeparture)
}
