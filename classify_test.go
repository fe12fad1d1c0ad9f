package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogisticsVersusContent(t *testing.T) {
	assert.True(t, isLogistics(Item{Type: TypeFlight}))
	assert.True(t, isLogistics(Item{Type: TypeTransport}))
	assert.True(t, isLogistics(Item{Type: TypeHotelCheckin}))
	assert.True(t, isLogistics(Item{Type: TypeHotelCheckout}))
	assert.True(t, isLogistics(Item{Type: TypeParking}))
	assert.True(t, isLogistics(Item{Type: TypeLuggage}))

	assert.True(t, isContent(Item{Type: TypeActivity}))
	assert.True(t, isContent(Item{Type: TypeRestaurant}))
	assert.False(t, isContent(Item{Type: TypeFlight}))
	assert.False(t, isLogistics(Item{Type: TypeActivity}))
}

func TestClassifyTransport(t *testing.T) {
	// 航班一律是長途交通
	assert.Equal(t, roleMainTransport, classifyTransport(Item{Type: TypeFlight, Title: "Vol AF1234"}))

	// 城際關鍵字
	assert.Equal(t, roleMainTransport, classifyTransport(Item{Type: TypeTransport, Title: "Train Paris → Lyon"}))
	assert.Equal(t, roleMainTransport, classifyTransport(Item{Type: TypeTransport, Title: "TGV vers Marseille"}))

	// 判斷不出來的一律當接駁
	assert.Equal(t, roleLocalTransfer, classifyTransport(Item{Type: TypeTransport, Title: "Transfert aéroport → hôtel"}))
	assert.Equal(t, roleLocalTransfer, classifyTransport(Item{Type: TypeTransport, Title: "Navette de l'hôtel"}))

	assert.Equal(t, roleNone, classifyTransport(Item{Type: TypeActivity, Title: "Train miniature"}))
}

func TestClassifyMeal(t *testing.T) {
	assert.Equal(t, mealLunch, classifyMeal(Item{Type: TypeRestaurant, Title: "Déjeuner au bistrot"}))
	assert.Equal(t, mealDinner, classifyMeal(Item{Type: TypeRestaurant, Title: "Dîner gastronomique"}))
	assert.Equal(t, mealBreakfast, classifyMeal(Item{Type: TypeRestaurant, Title: "Breakfast at the hotel"}))

	// "petit déjeuner" 必須判成早餐，不能被 "déjeuner" 吃掉
	assert.Equal(t, mealBreakfast, classifyMeal(Item{Type: TypeRestaurant, Title: "Petit déjeuner à l'hôtel"}))

	// 判斷不出餐別
	assert.Equal(t, mealNone, classifyMeal(Item{Type: TypeRestaurant, Title: "Chez Janou"}))
	// 非餐廳項目沒有餐別
	assert.Equal(t, mealNone, classifyMeal(Item{Type: TypeActivity, Title: "Déjeuner sur l'herbe (Musée d'Orsay)"}))
}

func TestIsGenericActivity(t *testing.T) {
	assert.True(t, isGenericActivity(Item{Type: TypeActivity, Title: "Pause café"}))
	assert.True(t, isGenericActivity(Item{Type: TypeActivity, Title: "PAUSE CAFÉ EN TERRASSE"}))
	assert.True(t, isGenericActivity(Item{Type: TypeActivity, Title: "Temps libre dans le centre"}))
	assert.True(t, isGenericActivity(Item{Type: TypeActivity, Title: "Coffee break"}))

	// 前綴比對：關鍵字出現在中間不算
	assert.False(t, isGenericActivity(Item{Type: TypeActivity, Title: "Musée du café"}))
	assert.False(t, isGenericActivity(Item{Type: TypeActivity, Title: "Tour Eiffel"}))
	// 只檢查 activity
	assert.False(t, isGenericActivity(Item{Type: TypeRestaurant, Title: "Pause café"}))
}

func TestLogisticsRanks(t *testing.T) {
	flight := Item{Type: TypeFlight, Title: "Vol Paris-Rome", Time: "09:00"}
	transfer := Item{Type: TypeTransport, Title: "Transfert aéroport → hôtel", Time: "11:00"}
	preTransfer := Item{Type: TypeTransport, Title: "Transfert vers l'aéroport", Time: "07:00"}
	checkin := Item{Type: TypeHotelCheckin, Title: "Check-in hôtel", Time: "15:00"}

	mainStart := flight.startMin()
	assert.Equal(t, rankFirstMainTransport, logisticsRankFirstDay(flight, mainStart))
	assert.Equal(t, rankFirstLocalTransfer, logisticsRankFirstDay(transfer, mainStart))
	// 長途交通之前的接駁是出發端，排最前面
	assert.Equal(t, rankFirstPreTransfer, logisticsRankFirstDay(preTransfer, mainStart))
	assert.Equal(t, rankFirstLodgingCheck, logisticsRankFirstDay(checkin, mainStart))

	checkout := Item{Type: TypeHotelCheckout, Title: "Check-out"}
	assert.Equal(t, rankLastCheckout, logisticsRankLastDay(checkout))
	assert.Equal(t, rankLastLocalTransfer, logisticsRankLastDay(transfer))
	assert.Equal(t, rankLastMainTransport, logisticsRankLastDay(flight))
	assert.Equal(t, rankLastParking, logisticsRankLastDay(Item{Type: TypeParking, Title: "Rendre la voiture"}))
}
