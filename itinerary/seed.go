package itinerary

import (
	"context"
	"net/http"
	"time"

	"tabi/db"
	"tabi/models"
	"tabi/mq"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultItinerary is the built-in six-day trip. It doubles as the demo-mode
// dataset and as the payload of the admin "import defaults" operation.
var defaultItinerary = []models.DaySchedule{
	{
		Day: 1, Date: "2026-02-03 (二)",
		Items: []models.ItineraryItem{
			{ID: "d1-1", Time: "08:15", Title: "高雄起飛 (SL 0390)", Category: "move", Description: "前往那霸機場，預計 10:50 抵達。手提 7kg / 託運 20kg。"},
			{ID: "d1-2", Time: "11:30", Title: "辦理入境 & 接駁", Category: "move", Description: "預約 ecbo cloak 或行李運送服務。"},
			{ID: "d1-3", Time: "12:30", Title: "午餐：豬肉蛋飯糰", Category: "food", Description: "牧志市場店 (Pork Tamago Onigiri)。經典沖繩美食。"},
			{ID: "d1-4", Time: "14:00", Title: "國際通漫遊", Category: "play", Description: "那霸市區逛街，單軌沿線景點。"},
			{ID: "d1-5", Time: "15:00", Title: "入住：As Bld", Category: "stay", Description: "住宿 Check-in (那霸市區)。"},
			{ID: "d1-6", Time: "18:00", Title: "晚餐：燒肉大餐", Category: "food", Description: "慶祝第一晚！(找有非牛/非海鮮選項的店)"},
		},
	},
	{
		Day: 2, Date: "2026-02-04 (三)",
		Items: []models.ItineraryItem{
			{ID: "d2-1", Time: "08:30", Title: "租車取車", Category: "move", Description: "預計租用 2 天 (Day 2-3)。10人需兩台車或中巴。"},
			{ID: "d2-2", Time: "11:00", Title: "午餐：海人食堂", Category: "food", Description: "讀谷村海鮮丼飯。(需確認非海鮮備案)"},
			{ID: "d2-3", Time: "14:00", Title: "美國村 (American Village)", Category: "play", Description: "妹妹指定行程！逛街、拍照、異國風情。", Location: "https://www.google.com/maps/place/@26.3159,127.7576,16z"},
			{ID: "d2-4", Time: "18:00", Title: "晚餐：中部美食", Category: "food", Description: "美國村周邊或返回那霸途中。"},
			{ID: "d2-5", Time: "20:00", Title: "返回那霸", Category: "move", Description: "欣賞夜景後駕車返回市區住宿。"},
		},
	},
	{
		Day: 3, Date: "2026-02-05 (四)",
		Items: []models.ItineraryItem{
			{ID: "d3-1", Time: "08:00", Title: "早餐：泊港魚市場", Category: "food", Description: "Tomari Iyumachi 吃海鮮。(或買早餐車上吃)"},
			{ID: "d3-2", Time: "10:00", Title: "南部自駕：奧武島", Category: "play", Description: "貓咪之島，必吃天婦羅。", Location: "https://maps.google.com/?q=26.1285,127.7735"},
			{ID: "d3-3", Time: "13:00", Title: "DMM 水族館 / iias", Category: "play", Description: "新開幕水族館與購物中心。"},
			{ID: "d3-4", Time: "15:30", Title: "瀨長島 Umikaji Terrace", Category: "food", Description: "海景鬆餅，近距離看飛機降落。", Location: "https://www.google.com/maps/place/@26.1778,127.6455,17z"},
			{ID: "d3-5", Time: "17:00", Title: "還車", Category: "move", Description: "將油加滿並歸還租車。"},
			{ID: "d3-6", Time: "18:30", Title: "晚餐：超市或市區", Category: "food", Description: "超市採買 (San-A / Union) 或市區餐廳。"},
		},
	},
	{
		Day: 4, Date: "2026-02-06 (五)",
		Items: []models.ItineraryItem{
			{ID: "d4-1", Time: "08:30", Title: "慶良間群島賞鯨", Category: "play", Description: "KKday 行程 (上午)。記得吃暈船藥！"},
			{ID: "d4-2", Time: "12:30", Title: "午餐：簡單吃", Category: "food", Description: "市區輕食或便利商店。"},
			{ID: "d4-3", Time: "14:00", Title: "自由活動 / 補貨", Category: "play", Description: "休息或前往國際通補買伴手禮。"},
			{ID: "d4-4", Time: "18:00", Title: "晚餐：超市巡禮", Category: "food", Description: "San-A / Union / MaxValu 買好料回住宿吃。"},
		},
	},
	{
		Day: 5, Date: "2026-02-07 (六)",
		Items: []models.ItineraryItem{
			{ID: "d5-1", Time: "08:00", Title: "北部一日遊 (KKday)", Category: "move", Description: "巴士接送，輕鬆玩。不用開車。"},
			{ID: "d5-2", Time: "10:30", Title: "美麗海水族館", Category: "play", Description: "黑潮之海，鯨鯊餵食秀 (停留 3hr+)。", Location: "https://www.google.com/maps/place/@26.6940,127.8779,16z"},
			{ID: "d5-3", Time: "14:00", Title: "古宇利島 & 萬座毛", Category: "play", Description: "跨海大橋與象鼻岩。"},
			{ID: "d5-4", Time: "19:00", Title: "晚餐：鳥貴族", Category: "food", Description: "連鎖平價串燒居酒屋，氣氛輕鬆。"},
		},
	},
	{
		Day: 6, Date: "2026-02-08 (日)",
		Items: []models.ItineraryItem{
			{ID: "d6-1", Time: "08:00", Title: "整理行李 Check-out", Category: "move", Description: "10:00 前退房。"},
			{ID: "d6-2", Time: "09:00", Title: "波上宮", Category: "play", Description: "海邊神社，祈求平安。", Location: "https://maps.google.com/?ll=26.2209,127.6694"},
			{ID: "d6-3", Time: "11:00", Title: "最後補貨", Category: "play", Description: "琉貿百貨或國際通。"},
			{ID: "d6-4", Time: "15:30", Title: "前往機場", Category: "move", Description: "預約接送或搭單軌。"},
			{ID: "d6-5", Time: "17:30", Title: "那霸起飛 (CI 133)", Category: "move", Description: "20:25 抵達高雄。手提 7kg / 託運 23kg (2件)。"},
		},
	},
}

// DefaultItinerary returns a deep copy so demo-mode callers can't mutate the
// shared seed.
func DefaultItinerary() []models.DaySchedule {
	out := make([]models.DaySchedule, len(defaultItinerary))
	for i, d := range defaultItinerary {
		items := make([]models.ItineraryItem, len(d.Items))
		copy(items, d.Items)
		d.Items = items
		out[i] = d
	}
	return out
}

// POST /api/itinerary/seed
func SeedDefaults(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	for _, sched := range DefaultItinerary() {
		sched.DocID = dayDocID(sched.Day)
		sortItems(sched.Items)
		opts := options.Replace().SetUpsert(true)
		if _, err := db.ItineraryCollection.ReplaceOne(ctx, bson.M{"_id": sched.DocID}, sched, opts); err != nil {
			http.Error(w, "Error seeding itinerary", http.StatusInternalServerError)
			return
		}
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "itinerary", Method: "seed"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"seeded": len(defaultItinerary)})
}
