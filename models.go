package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ========== 資料模型 ==========
type Trip struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ID          int         `json:"id" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Region      string      `json:"region" bson:"region"`
	StartDate   string      `json:"start_date" bson:"start_date"`
	Days        int         `json:"days" bson:"days"`
	BudgetTWD   int         `json:"budget_twd" bson:"budget_twd"`
	People      int         `json:"people" bson:"people"`
	DailyHours  int         `json:"daily_hours" bson:"daily_hours"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
	Plan        []Day       `json:"plan" bson:"plan"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

type Preferences struct {
	Pace      string   `json:"pace"`
	Types     []string `json:"types"`
	Transport []string `json:"transport"`
	Dining    []string `json:"dining"`
}

type Day struct {
	DayIndex int    `json:"day_index" bson:"day_index"`
	Date     string `json:"date" bson:"date"`
	Items    []Item `json:"items" bson:"items"`
}

type Item struct {
	ID          string  `json:"id" bson:"id"`
	Type        string  `json:"type" bson:"type"`
	Time        string  `json:"time" bson:"time"`
	DurationMin int     `json:"duration_min" bson:"duration_min"`
	Order       int     `json:"order" bson:"order"`
	Title       string  `json:"title" bson:"title"`
	Address     string  `json:"address" bson:"address"`
	Lat         float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty" bson:"lng,omitempty"`
	Link        string  `json:"link" bson:"link"`
	Note        string  `json:"note" bson:"note"`
}

// startMin 回傳項目的開始時間 (當日分鐘數)
func (it Item) startMin() int {
	return toMinutes(it.Time)
}

// endMin 回傳項目的結束時間；負的 duration 視為 0 (上游資料可能有誤)
func (it Item) endMin() int {
	d := it.DurationMin
	if d < 0 {
		d = 0
	}
	return it.startMin() + d
}

// ChatRequest 前端傳來的請求格式
type ChatRequest struct {
	Message string     `json:"message"` // 使用者這次說的話
	History []ChatPart `json:"history"` // 過去的對話歷史 (可選)
}

// ChatPart 對話歷史的單一則訊息
type ChatPart struct {
	Role string `json:"role"` // "user" (使用者) 或 "model" (AI)
	Text string `json:"text"` // 訊息內容
}

// ========== 檢核結果模型 ==========

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

type FindingKind string

const (
	KindOverlap                FindingKind = "OVERLAP"
	KindUnrealisticHour        FindingKind = "UNREALISTIC_HOUR"
	KindGenericActivity        FindingKind = "GENERIC_ACTIVITY"
	KindDuplicateActivity      FindingKind = "DUPLICATE_ACTIVITY"
	KindMealOrder              FindingKind = "MEAL_ORDER"
	KindActivityBeforeArrival  FindingKind = "ACTIVITY_BEFORE_ARRIVAL"
	KindActivityAfterDeparture FindingKind = "ACTIVITY_AFTER_DEPARTURE"
	KindIllogicalSequence      FindingKind = "ILLOGICAL_SEQUENCE"
	KindTransferAfterActivity  FindingKind = "TRANSFER_AFTER_ACTIVITY"
	KindCheckinBeforeTransfer  FindingKind = "CHECKIN_BEFORE_TRANSFER"
	KindCheckoutAfterTransfer  FindingKind = "CHECKOUT_AFTER_TRANSFER"
)

// Finding 單一檢核結果。ItemIDs[0] 一律是違規項目本身，
// 需要參照項目的種類 (如 ACTIVITY_BEFORE_ARRIVAL) 把參照項目放在 ItemIDs[1]。
type Finding struct {
	Kind        FindingKind `json:"kind"`
	DayNumber   int         `json:"day_number"`
	Message     string      `json:"message"`
	ItemIDs     []string    `json:"item_ids"`
	ItemTitles  []string    `json:"item_titles,omitempty"`
	FirstDay    int         `json:"first_day,omitempty"`
	Severity    Severity    `json:"severity"`
	AutoFixable bool        `json:"auto_fixable"`
}

// RepairAction 修復引擎實際做的動作紀錄 (位移 / 刪除 / 重排 / 改時段)
type RepairAction struct {
	Kind      FindingKind `json:"kind"`
	DayNumber int         `json:"day_number"`
	ItemID    string      `json:"item_id,omitempty"`
	Title     string      `json:"title,omitempty"`
	Action    string      `json:"action"` // shifted / removed / reordered / retimed
	Detail    string      `json:"detail,omitempty"`
}

type ValidationResult struct {
	Valid    bool           `json:"valid"`
	Errors   []Finding      `json:"errors"`
	Warnings []Finding      `json:"warnings"`
	Repaired *Trip          `json:"repaired,omitempty"`
	Repairs  []RepairAction `json:"repairs,omitempty"`
	Residual []Finding      `json:"residual,omitempty"`
}
