// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

// regionalUniversities maps region names to notable universities used for
// the named-university query expansion.
var regionalUniversities = map[string][]string{
	"北海道": {
		"北海道大学", "北海道教育大学", "室蘭工業大学", "小樽商科大学", "帯広畜産大学",
		"北見工業大学", "旭川医科大学", "札幌医科大学", "札幌市立大学", "北海道科学大学",
	},
	"東北": {
		"東北大学", "弘前大学", "岩手大学", "秋田大学", "山形大学", "福島大学",
		"宮城教育大学", "東北工業大学", "東北学院大学", "仙台白百合女子大学",
	},
	"関東": {
		"東京大学", "東京工業大学", "一橋大学", "東京医科歯科大学", "東京外国語大学",
		"東京農工大学", "電気通信大学", "東京海洋大学", "東京芸術大学", "政策研究大学院大学",
		"早稲田大学", "慶應義塾大学", "明治大学", "立教大学", "中央大学", "法政大学",
		"東京理科大学", "青山学院大学", "学習院大学", "明治学院大学", "獨協大学",
		"成城大学", "成蹊大学", "日本大学", "東洋大学", "駒澤大学", "専修大学",
		"國學院大學", "大東文化大学", "亜細亜大学", "東京経済大学", "武蔵大学",
		"東京都市大学", "東京電機大学", "工学院大学", "芝浦工業大学", "日本工業大学",
	},
	"中部": {
		"名古屋大学", "岐阜大学", "静岡大学", "愛知教育大学", "豊橋技術科学大学",
		"名古屋工業大学", "豊田工業大学", "名古屋市立大学", "金沢大学", "富山大学",
		"福井大学", "新潟大学", "長岡技術科学大学", "山梨大学", "信州大学",
		"名古屋外国語大学", "中京大学", "南山大学", "名城大学", "愛知大学",
		"愛知工業大学", "愛知学院大学", "日本福祉大学",
	},
	"近畿": {
		"京都大学", "大阪大学", "神戸大学", "大阪市立大学", "大阪府立大学",
		"兵庫県立大学", "奈良女子大学", "滋賀大学", "和歌山大学", "京都府立大学",
		"京都工芸繊維大学", "京都教育大学", "大阪教育大学", "関西大学", "関西学院大学",
		"同志社大学", "立命館大学", "龍谷大学", "佛教大学", "京都産業大学",
		"近畿大学", "大阪工業大学", "大阪電気通信大学", "摂南大学", "甲南大学",
		"神戸学院大学", "大手前大学", "桃山学院大学", "追手門学院大学",
	},
	"中国": {
		"広島大学", "岡山大学", "鳥取大学", "島根大学", "山口大学",
		"広島市立大学", "尾道市立大学", "岡山県立大学", "広島修道大学",
		"広島経済大学", "安田女子大学", "福山大学", "山陽女子短期大学",
	},
	"四国": {
		"徳島大学", "香川大学", "愛媛大学", "高知大学", "鳴門教育大学",
		"四国大学", "松山大学", "高知工科大学", "徳島文理大学",
	},
	"九州": {
		"九州大学", "北九州大学", "熊本大学", "鹿児島大学", "長崎大学",
		"大分大学", "佐賀大学", "琉球大学", "宮崎大学", "鹿屋体育大学",
		"九州工業大学", "福岡大学", "西南学院大学", "九州産業大学",
		"久留米大学", "長崎国際大学", "熊本県立大学", "宮崎産業経営大学",
	},
	"沖縄": {
		"琉球大学", "沖縄国際大学", "沖縄大学", "名桜大学", "沖縄キリスト教学院大学",
	},
}
