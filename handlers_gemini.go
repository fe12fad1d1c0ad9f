package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ========== Gemini 行程生成 ==========
// 生成端只負責拿到初版排程；回給前端之前一定先過 validateAndFix，
// 模型排出來的時間衝突、罐頭行程在這一層收掉。

type GenerateRequest struct {
	Name        string      `json:"name"`
	Region      string      `json:"region"`
	StartDate   string      `json:"start_date"`
	Days        int         `json:"days"`
	People      int         `json:"people"`
	BudgetTWD   int         `json:"budget_twd"`
	DailyHours  int         `json:"daily_hours"`
	Preferences Preferences `json:"preferences"`
	Save        bool        `json:"save"` // true 時直接入庫
}

func newGeminiClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// generateItinerary 呼叫 Gemini 生成多日行程，修復後回傳 (可選擇入庫)
func generateItinerary(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.Days <= 0 || req.Region == "" {
		c.JSON(400, gin.H{"error": "region and days are required"})
		return
	}

	ctx := c.Request.Context()
	client, err := newGeminiClient(ctx)
	if err != nil {
		c.JSON(500, gin.H{"error": "Client error: " + err.Error()})
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SetMaxOutputTokens(8192)
	model.SetTemperature(0.7)

	res, err := model.GenerateContent(ctx, genai.Text(buildItineraryPrompt(req)))
	if err != nil {
		c.JSON(500, gin.H{"error": "Gemini error: " + err.Error()})
		return
	}

	var responseText string
	if len(res.Candidates) > 0 {
		for _, part := range res.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				responseText += string(txt)
			}
		}
	}

	plan, err := parsePlanJSON(responseText)
	if err != nil {
		c.JSON(502, gin.H{"error": "invalid plan from model: " + err.Error()})
		return
	}

	trip := Trip{
		ID:          int(time.Now().Unix()),
		Name:        req.Name,
		Region:      req.Region,
		StartDate:   req.StartDate,
		Days:        req.Days,
		People:      req.People,
		BudgetTWD:   req.BudgetTWD,
		DailyHours:  req.DailyHours,
		Preferences: req.Preferences,
		Plan:        plan,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// 生成結果先檢核再修復；殘留的問題一併回報給呼叫端
	report := validateTrip(trip)
	fixed := validateAndFix(trip)

	if req.Save && tripsCollection != nil {
		if _, err := tripsCollection.InsertOne(context.Background(), fixed); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(200, gin.H{
		"trip":       fixed,
		"validation": report,
	})
}

// buildItineraryPrompt 要求模型只回傳固定 schema 的 JSON
func buildItineraryPrompt(req GenerateRequest) string {
	return fmt.Sprintf(`
    你是一個行程規劃 API。請為以下需求產生多日行程，只回傳 JSON 陣列，不要任何解釋或 Markdown。

    目的地: %s
    出發日: %s
    天數: %d
    人數: %d
    預算(TWD): %d
    每日遊玩時數: %d
    偏好: %v

    Schema (JSON 陣列，每天一個物件):
    [{"day_index":1,"date":"YYYY-MM-DD","items":[
      {"id":"d1-1","type":"flight|transport|hotel-checkin|hotel-checkout|parking|luggage|activity|restaurant",
       "time":"HH:MM","duration_min":60,"title":"...","address":"...","lat":0,"lng":0}]}]

    規則：
    1. day_index 從 1 連續編號，天數要跟需求一致。
    2. 第一天要包含抵達交通，最後一天要包含退房與離開交通。
    3. 景點不要重複，不要用「自由活動」這類填充行程。
    `, req.Region, req.StartDate, req.Days, req.People, req.BudgetTWD, req.DailyHours, req.Preferences)
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// parsePlanJSON 模型常把 JSON 包在 code fence 裡，先剝掉再解析
func parsePlanJSON(text string) ([]Day, error) {
	s := strings.TrimSpace(text)
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	var plan []Day
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("empty plan")
	}
	return plan, nil
}

// chatWithGemini 行程微調的對話入口 (帶上下文)
func chatWithGemini(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "JSON 格式錯誤: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	client, err := newGeminiClient(ctx)
	if err != nil {
		c.JSON(500, gin.H{"error": "無法建立 Gemini Client: " + err.Error()})
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SystemInstruction = genai.NewUserContent(genai.Text("你是一個專業導遊。"))
	model.SetMaxOutputTokens(8192)
	model.SetTemperature(0.7)

	cs := model.StartChat()

	if len(req.History) > 0 {
		var chatHistory []*genai.Content
		for _, h := range req.History {
			role := "user"
			if h.Role == "model" || h.Role == "assistant" {
				role = "model"
			}
			chatHistory = append(chatHistory, &genai.Content{
				Role:  role,
				Parts: []genai.Part{genai.Text(h.Text)},
			})
		}
		cs.History = chatHistory
	}

	res, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		c.JSON(500, gin.H{"error": "Gemini API 錯誤: " + err.Error()})
		return
	}

	var responseText string
	if len(res.Candidates) > 0 {
		for _, part := range res.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				responseText += string(txt)
			}
		}
	}

	c.JSON(200, gin.H{"reply": responseText})
}
