package main

import "strings"

// ========== 項目分類 ==========
// 行程項目的 type 是封閉集合；title 只拿來做啟發式判斷 (交通性質、餐別、罐頭行程)。
// 所有字串比對集中在這個檔案，引擎其他部分只看分類結果。

const (
	TypeFlight        = "flight"
	TypeTransport     = "transport"
	TypeHotelCheckin  = "hotel-checkin"
	TypeHotelCheckout = "hotel-checkout"
	TypeParking       = "parking"
	TypeLuggage       = "luggage"
	TypeActivity      = "activity"
	TypeRestaurant    = "restaurant"
)

// isLogistics 交通/住宿轉換類項目
func isLogistics(it Item) bool {
	switch it.Type {
	case TypeFlight, TypeTransport, TypeHotelCheckin, TypeHotelCheckout, TypeParking, TypeLuggage:
		return true
	}
	return false
}

// isContent 旅客實際體驗的項目 (景點、餐廳)
func isContent(it Item) bool {
	return it.Type == TypeActivity || it.Type == TypeRestaurant
}

func normTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ========== 交通性質 ==========

type transportRole int

const (
	roleNone transportRole = iota
	roleMainTransport
	roleLocalTransfer
)

// 長途交通關鍵字 (城市間移動)
var mainTransportKeywords = []string{
	"train", "tgv", "intercit", "eurostar", "thalys",
	"vol ", "flight", "avion", "ferry", "car longue distance",
}

// classifyTransport 區分長途交通與接駁。
// 純字串啟發式，判斷不出來時一律當接駁 (best-effort)。
func classifyTransport(it Item) transportRole {
	if it.Type == TypeFlight {
		return roleMainTransport
	}
	if it.Type != TypeTransport {
		return roleNone
	}
	t := normTitle(it.Title)
	for _, kw := range mainTransportKeywords {
		if strings.Contains(t, kw) {
			return roleMainTransport
		}
	}
	return roleLocalTransfer
}

// isAirportCheckin 機場報到 (相對於旅宿 check-in)
func isAirportCheckin(it Item) bool {
	if it.Type != TypeHotelCheckin {
		return false
	}
	t := normTitle(it.Title)
	return strings.Contains(t, "aéroport") || strings.Contains(t, "aeroport") ||
		strings.Contains(t, "airport") || strings.Contains(t, "enregistrement")
}

// ========== 餐別 ==========

type mealKind int

const (
	mealNone mealKind = iota
	mealBreakfast
	mealLunch
	mealDinner
)

// 標準用餐時段的起始時間 (修復時重新定錨用)
var canonicalMealStart = map[mealKind]int{
	mealBreakfast: 8 * 60,
	mealLunch:     12*60 + 30,
	mealDinner:    19*60 + 30,
}

var (
	breakfastKeywords = []string{"petit déjeuner", "petit-déjeuner", "petit dejeuner", "breakfast", "brunch"}
	lunchKeywords     = []string{"déjeuner", "dejeuner", "lunch", "午餐"}
	dinnerKeywords    = []string{"dîner", "dinner", "souper", "晚餐"}
)

// classifyMeal 由餐廳項目的 title 判斷餐別；先比早餐，
// 否則 "petit déjeuner" 會被 "déjeuner" 吃掉。
func classifyMeal(it Item) mealKind {
	if it.Type != TypeRestaurant {
		return mealNone
	}
	t := normTitle(it.Title)
	for _, kw := range breakfastKeywords {
		if strings.Contains(t, kw) {
			return mealBreakfast
		}
	}
	for _, kw := range lunchKeywords {
		if strings.Contains(t, kw) {
			return mealLunch
		}
	}
	for _, kw := range dinnerKeywords {
		if strings.Contains(t, kw) {
			return mealDinner
		}
	}
	return mealNone
}

// ========== 罐頭行程 ==========

// 生成端塞時間用的填充行程，前綴比對、不分大小寫。
// 固定查表，不是推論出來的。
var genericActivityPatterns = []string{
	"pause café",
	"pause cafe",
	"coffee break",
	"temps libre",
	"free time",
	"quartier libre",
	"marché local",
	"marche local",
	"local market",
	"quartier historique",
	"historic quarter",
	"promenade libre",
	"balade libre",
	"découverte libre",
	"exploration du quartier",
	"visite libre",
	"activité au choix",
	"repos à l'hôtel",
}

func isGenericActivity(it Item) bool {
	if it.Type != TypeActivity {
		return false
	}
	t := normTitle(it.Title)
	for _, p := range genericActivityPatterns {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// ========== 第一天 / 最後一天的交通排序表 ==========
// 數值是固定順位 (×10，luggage 的 4.5 才能用整數表示)。

const (
	rankFirstPreTransfer   = 0
	rankFirstParking       = 10
	rankFirstAirportCheck  = 20
	rankFirstMainTransport = 30
	rankFirstLocalTransfer = 40
	rankFirstLuggage       = 45
	rankFirstLodgingCheck  = 50

	rankLastCheckout      = 10
	rankLastLocalTransfer = 20
	rankLastMainTransport = 30
	rankLastParking       = 40
)

// logisticsRankFirstDay 抵達日的順位。mainStart 是重排前長途交通的原始開始時間，
// 用來分辨出發前接駁 (住家→機場) 與抵達後接駁 (機場→旅宿)。
func logisticsRankFirstDay(it Item, mainStart int) int {
	switch {
	case it.Type == TypeParking:
		return rankFirstParking
	case isAirportCheckin(it):
		return rankFirstAirportCheck
	case classifyTransport(it) == roleMainTransport:
		return rankFirstMainTransport
	case classifyTransport(it) == roleLocalTransfer:
		if mainStart >= 0 && it.startMin() < mainStart {
			return rankFirstPreTransfer
		}
		return rankFirstLocalTransfer
	case it.Type == TypeLuggage:
		return rankFirstLuggage
	case it.Type == TypeHotelCheckin:
		return rankFirstLodgingCheck
	}
	return rankFirstLocalTransfer
}

// logisticsRankLastDay 離開日的順位
func logisticsRankLastDay(it Item) int {
	switch {
	case it.Type == TypeHotelCheckout:
		return rankLastCheckout
	case classifyTransport(it) == roleMainTransport:
		return rankLastMainTransport
	case classifyTransport(it) == roleLocalTransfer:
		return rankLastLocalTransfer
	case it.Type == TypeParking:
		return rankLastParking
	case it.Type == TypeLuggage:
		return rankLastCheckout + 5
	}
	return rankLastLocalTransfer
}
