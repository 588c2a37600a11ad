package guide

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"tabi/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// User-facing replies for the distinguishable failure causes. The relay never
// surfaces an error to its caller; failures come back as the guide's answer.
const (
	MsgNoAPIKey      = "尚未設定 API Key。請確認 .env 設定。"
	MsgInvalidAPIKey = "連線失敗：API Key 可能無效。請檢查 .env 檔案中的設定。"
	MsgRateLimited   = "連線失敗：請求次數過多 (Quota Exceeded)，請稍後再試。"
)

// Client relays questions to the generative-language endpoint.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		// no client-side timeout: a slow answer keeps the thinking
		// indicator alive rather than failing the exchange
		HTTPClient: http.DefaultClient,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// buildPrompt folds the complete itinerary snapshot into the instruction so
// the guide answers from this trip's actual plan.
func buildPrompt(question string, days []models.DaySchedule) string {
	contextJSON, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		contextJSON = []byte("[]")
	}

	return fmt.Sprintf(`你是一位專業的沖繩私人導遊 AI。
你擁有以下這次家庭旅遊的詳細行程資料（JSON 格式）：
%s

請根據以上資料回答使用者的問題。
規則：
1. 語氣要親切、熱情，像家人一樣。
2. 如果行程中沒有提到的資訊，請回答「行程中沒有提到」，不要隨意編造，但可以提供一般性的沖繩旅遊建議。
3. 回答盡量簡潔有力，重點清晰。
4. 使用繁體中文 (台灣)。

使用者問題：%s
`, contextJSON, question)
}

// Ask sends one question with the full itinerary as context and returns the
// answer text. All failure causes map to a human-readable reply; without an
// API key no request leaves the process.
func (c *Client) Ask(ctx context.Context, question string, days []models.DaySchedule) string {
	if c.APIKey == "" {
		return MsgNoAPIKey
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(question, days)}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return connectionError(err.Error())
	}

	url := c.BaseURL + "?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return connectionError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("guide: request failed: %v", err)
		return connectionError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionError(err.Error())
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return connectionError(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("HTTP Error: %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return classifyFailure(resp.StatusCode, msg)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return connectionError("No candidates returned from API")
	}
	return parsed.Candidates[0].Content.Parts[0].Text
}

func classifyFailure(status int, msg string) string {
	switch {
	case status == http.StatusBadRequest, strings.Contains(msg, "API key"):
		return MsgInvalidAPIKey
	case status == http.StatusTooManyRequests, strings.Contains(msg, "429"):
		return MsgRateLimited
	default:
		return connectionError(msg)
	}
}

func connectionError(msg string) string {
	return fmt.Sprintf("抱歉，我現在有點頭暈 (連線錯誤：%s)，請稍後再試。", msg)
}
