package packing

import "tabi/models"

// defaultCategories is the list a traveller starts from before their first
// save. It is never persisted on read to keep the collection free of junk
// documents.
var defaultCategories = []models.PackingCategory{
	{
		ID:   "cat_docs",
		Name: "證件 / 錢包 (最重要的隨身物品)",
		Items: []models.PackingItem{
			{ID: "d1", Text: "護照：確認效期需 > 6個月"},
			{ID: "d2", Text: "台灣駕照：自駕必備，正本也要帶"},
			{ID: "d3", Text: "日文譯本：自駕必備"},
			{ID: "d4", Text: "交通卡：搭乘電車、超商支付、投販賣機，避免滿手零錢"},
			{ID: "d5", Text: "信用卡：確認海外回饋高、免手續費的卡片，建議帶兩張不同發卡組織"},
			{ID: "d6", Text: "日幣現金：準備零錢搭車或投販賣機"},
			{ID: "d7", Text: "日本行動支付 paypay 設定：iPass Money、玉山行動支付、全支付⚠️，擇一"},
			{ID: "d8", Text: "機票行程單：電子/紙本"},
			{ID: "d9", Text: "訂房憑證：Airbnb App"},
			{ID: "d10", Text: "租車憑證：電子"},
			{ID: "d11", Text: "KKday 行程表：電子"},
			{ID: "d12", Text: "eSIM"},
			{ID: "d13", Text: "台幣現金：回國用"},
		},
	},
	{
		ID:   "cat_elec",
		Name: "電子產品 (電池需隨身)",
		Items: []models.PackingItem{
			{ID: "e1", Text: "手機"},
			{ID: "e2", Text: "充電線 & 充電頭：手機、手錶、刮鬍刀等"},
			{ID: "e3", Text: "行動電源：充滿電、隨身帶"},
			{ID: "e4", Text: "相機"},
			{ID: "e5", Text: "記憶卡：確認可用空間"},
			{ID: "e6", Text: "筆電、HDMI 轉接線"},
			{ID: "e7", Text: "耳機：有線/藍牙"},
			{ID: "e8", Text: "刮鬍刀"},
		},
	},
	{
		ID:   "cat_wear",
		Name: "衣物 (洋蔥式穿法)",
		Items: []models.PackingItem{
			{ID: "c1", Text: "換洗衣物 (依天數)"},
			{ID: "c2", Text: "睡衣"},
			{ID: "c3", Text: "內衣褲 / 襪子：建議多帶一套"},
			{ID: "c4", Text: "薄外套：早晚溫差/機上"},
			{ID: "c5", Text: "好走的鞋"},
			{ID: "c6", Text: "太陽眼鏡：開車南下西曬嚴重"},
			{ID: "c7", Text: "禦寒衣物：毛帽、手套、圍巾"},
		},
	},
	{
		ID:   "cat_life",
		Name: "生活用品與醫藥",
		Items: []models.PackingItem{
			{ID: "l1", Text: "牙刷 / 牙膏"},
			{ID: "l2", Text: "個人保養品 (洗卸/保濕)"},
			{ID: "l3", Text: "防曬乳"},
			{ID: "l4", Text: "常備藥品 (感冒/止痛/腸胃)"},
			{ID: "l5", Text: "塑膠袋 (裝髒衣/垃圾)"},
			{ID: "l6", Text: "雨具 (摺疊傘/雨衣)"},
			{ID: "l7", Text: "面紙 / 濕紙巾 / 酒精噴霧"},
			{ID: "l8", Text: "牙線"},
			{ID: "l9", Text: "口罩"},
		},
	},
	{
		ID:   "cat_todo",
		Name: "行前待辦 / 其他",
		Items: []models.PackingItem{
			{ID: "t1", Text: "倒垃圾 / 關瓦斯 / 關電源"},
			{ID: "t2", Text: "預約機場接送"},
			{ID: "t3", Text: "投保旅平險＋不便險"},
			{ID: "t4", Text: "台灣自動通關流程 (教長輩)"},
			{ID: "t5", Text: "VJW (日本入境填寫)"},
			{ID: "t6", Text: "設定旅遊定位分享"},
			{ID: "t7", Text: "購物行程規劃"},
			{ID: "t8", Text: "提前 Check-in"},
			{ID: "t9", Text: "確認票券領票位置"},
			{ID: "t10", Text: "確認行李打包、行李束帶綁好"},
		},
	},
}

// DefaultList returns a fresh deep copy so callers can check items off
// without touching the template.
func DefaultList() []models.PackingCategory {
	out := make([]models.PackingCategory, len(defaultCategories))
	for i, cat := range defaultCategories {
		items := make([]models.PackingItem, len(cat.Items))
		copy(items, cat.Items)
		cat.Items = items
		out[i] = cat
	}
	return out
}
