// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "encoding/json"

// Fallback returns a fresh copy of the offline dataset served when
// extraction cannot produce usable records. Callers may mutate the
// returned records freely.
func Fallback() []RawRecord {
	var records []RawRecord
	if err := json.Unmarshal([]byte(fallbackJSON), &records); err != nil {
		// The literal below is fixed at compile time; a decode failure
		// is a programming error.
		panic("extract: invalid fallback dataset: " + err.Error())
	}
	return records
}

const fallbackJSON = `[
  {
    "id": "1",
    "name": "東京大学",
    "officialUrl": "https://www.u-tokyo.ac.jp/",
    "faculty": "工学部",
    "department": "情報工学科",
    "deviationScore": "70-75",
    "commonTestScore": "90-95%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月25日",
    "examSchedules": [
      "願書受付: 2024年12月1日",
      "出願締切: 2025年1月15日",
      "試験日: 2025年2月25日",
      "合格発表: 2025年3月10日"
    ],
    "admissionMethods": ["一般選抜: 前期日程 3教科型", "共通テスト利用型: 数学・英語重視"],
    "subjectHighlights": ["数学: 200点", "理科: 150点 (物理/化学)", "英語: 150点"],
    "commonTestRatio": "共通テスト60% / 個別試験40%",
    "selectionNotes": "共通テスト利用型は英語外部検定を換算可",
    "applicationDeadline": "2025年1月15日",
    "aiSummary": "日本最高峰の研究環境。世界的な研究者が多数在籍し、最先端の教育を受けられる。",
    "sources": ["https://www.u-tokyo.ac.jp/"]
  },
  {
    "id": "2",
    "name": "京都大学",
    "officialUrl": "https://www.kyoto-u.ac.jp/",
    "faculty": "工学部",
    "department": "情報学科",
    "deviationScore": "68-73",
    "commonTestScore": "88-93%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月25日",
    "examSchedules": [
      "願書受付: 2024年12月10日",
      "出願締切: 2025年1月20日",
      "試験日: 2025年2月25日"
    ],
    "admissionMethods": ["一般選抜: 前期日程", "共通テスト利用型: 5教科7科目"],
    "subjectHighlights": ["数学: 200点", "理科: 200点", "英語: 150点"],
    "commonTestRatio": "共通テスト70% / 個別試験30%",
    "selectionNotes": "第二段階選抜で面接あり",
    "applicationDeadline": "2025年1月20日",
    "aiSummary": "自由な学風と高い研究力。ノーベル賞受賞者も多数輩出している名門大学。",
    "sources": ["https://www.kyoto-u.ac.jp/"]
  },
  {
    "id": "3",
    "name": "大阪大学",
    "officialUrl": "https://www.osaka-u.ac.jp/",
    "faculty": "基礎工学部",
    "department": "情報科学科",
    "deviationScore": "65-70",
    "commonTestScore": "85-90%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月24日",
    "examSchedules": [
      "願書受付: 2024年12月5日",
      "出願締切: 2025年1月18日",
      "試験日: 2025年2月24日"
    ],
    "admissionMethods": ["一般選抜: 前期/後期", "共通テスト利用型: 5教科"],
    "subjectHighlights": ["数学: 180点", "理科: 180点", "英語: 140点"],
    "commonTestRatio": "共通テスト55% / 個別試験45%",
    "selectionNotes": "共通テスト利用型は出願資格に外部英語試験不要",
    "applicationDeadline": "2025年1月18日",
    "aiSummary": "情報科学分野で国内有数の研究環境と企業連携を有する。",
    "sources": ["https://www.osaka-u.ac.jp/"],
    "institutionType": "国立"
  },
  {
    "id": "4",
    "name": "東北大学",
    "officialUrl": "https://www.tohoku.ac.jp/",
    "faculty": "工学部",
    "department": "情報知能システム総合学科",
    "deviationScore": "62-67",
    "commonTestScore": "82-88%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月26日",
    "examSchedules": [
      "願書受付: 2024年12月8日",
      "出願締切: 2025年1月21日",
      "試験日: 2025年2月26日"
    ],
    "admissionMethods": ["一般選抜: 前期", "AO入試: 総合型選抜"],
    "subjectHighlights": ["数学: 150点", "理科: 150点", "英語: 120点"],
    "commonTestRatio": "共通テスト50% / 個別試験50%",
    "selectionNotes": "AO入試は志望理由書提出が必要",
    "applicationDeadline": "2025年1月21日",
    "aiSummary": "実学重視の研究で評価が高い。AI・ロボティクス分野も充実。",
    "sources": ["https://www.tohoku.ac.jp/"],
    "institutionType": "国立"
  },
  {
    "id": "5",
    "name": "早稲田大学",
    "officialUrl": "https://www.waseda.jp/",
    "faculty": "基幹理工学部",
    "department": "情報理工学科",
    "deviationScore": "60-65",
    "commonTestScore": "80-85%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月20日",
    "examSchedules": [
      "願書受付: 2024年12月15日",
      "出願締切: 2025年1月25日",
      "試験日: 2025年2月20日"
    ],
    "admissionMethods": ["一般選抜: 3教科型", "共通テスト利用型: ボーダーフリー方式"],
    "subjectHighlights": ["数学: 150点", "英語: 150点", "理科: 150点"],
    "commonTestRatio": "共通テスト40% / 個別試験60%",
    "selectionNotes": "共通テスト利用型はボーダーフリー方式あり",
    "applicationDeadline": "2025年1月25日",
    "aiSummary": "私学トップクラスの理工系。幅広い分野と国際連携が魅力。",
    "sources": ["https://www.waseda.jp/"],
    "institutionType": "私立"
  },
  {
    "id": "6",
    "name": "慶應義塾大学",
    "officialUrl": "https://www.keio.ac.jp/",
    "faculty": "理工学部",
    "department": "情報工学科",
    "deviationScore": "62-67",
    "commonTestScore": "82-87%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月18日",
    "examSchedules": [
      "願書受付: 2024年12月12日",
      "出願締切: 2025年1月22日",
      "試験日: 2025年2月18日"
    ],
    "admissionMethods": ["一般選抜: 前期・後期", "共通テスト利用型: 高得点科目重視"],
    "subjectHighlights": ["数学: 180点", "英語: 180点", "理科: 140点"],
    "commonTestRatio": "共通テスト50% / 個別試験50%",
    "selectionNotes": "共通テスト利用型は英語外部試験加点あり",
    "applicationDeadline": "2025年1月22日",
    "aiSummary": "産業界との結びつきが強く実践的。研究環境と就職に強み。",
    "sources": ["https://www.keio.ac.jp/"],
    "institutionType": "私立"
  },
  {
    "id": "1",
    "name": "東京工業大学",
    "officialUrl": "https://www.titech.ac.jp/",
    "faculty": "情報理工学院",
    "department": "情報工学系",
    "deviationScore": "65-70",
    "commonTestScore": "85-90%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月25日",
    "examSchedules": [
      "願書受付: 2024年12月1日",
      "出願締切: 2025年1月15日",
      "試験日: 2025年2月25日",
      "合格発表: 2025年3月10日"
    ],
    "admissionMethods": ["一般選抜: 前期日程 3教科型", "共通テスト利用型: 数学・英語重視"],
    "subjectHighlights": ["数学: 200点", "理科: 150点", "英語: 150点"],
    "commonTestRatio": "共通テスト60% / 個別試験40%",
    "selectionNotes": "共通テスト利用型は英語外部検定を換算可",
    "applicationDeadline": "2025年1月15日",
    "institutionType": "国立",
    "aiSummary": "情報工学分野で日本トップクラスの研究環境を誇る。AI・機械学習の研究が盛んで、産学連携も充実。",
    "sources": ["https://www.titech.ac.jp/", "https://admissions.titech.ac.jp/"]
  },
  {
    "id": "2",
    "name": "早稲田大学",
    "officialUrl": "https://www.waseda.jp/",
    "faculty": "基幹理工学部",
    "department": "情報理工学科",
    "deviationScore": "60-65",
    "commonTestScore": "80-85%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月20日",
    "examSchedules": [
      "願書受付: 2024年12月15日",
      "出願締切: 2025年1月25日",
      "試験日: 2025年2月20日"
    ],
    "admissionMethods": ["一般選抜: 3教科型", "共通テスト利用型: ボーダーフリー方式"],
    "subjectHighlights": ["数学: 150点", "英語: 150点", "理科: 150点"],
    "commonTestRatio": "共通テスト40% / 個別試験60%",
    "selectionNotes": "共通テスト利用型はボーダーフリー方式あり",
    "applicationDeadline": "2025年1月25日",
    "institutionType": "私立",
    "aiSummary": "伝統ある私立大学の理工学部。幅広い分野の研究が可能で、就職実績も良好。国際交流プログラムも充実。",
    "sources": ["https://www.waseda.jp/"]
  },
  {
    "id": "3",
    "name": "慶應義塾大学",
    "officialUrl": "https://www.keio.ac.jp/",
    "faculty": "理工学部",
    "department": "情報工学科",
    "deviationScore": "62-67",
    "commonTestScore": "82-87%",
    "examType": "一般選抜",
    "requiredSubjects": ["数学", "理科", "英語"],
    "examDate": "2025年2月18日",
    "examSchedules": [
      "願書受付: 2024年12月12日",
      "出願締切: 2025年1月22日",
      "試験日: 2025年2月18日"
    ],
    "admissionMethods": ["一般選抜: 前期・後期", "共通テスト利用型: 高得点科目重視"],
    "subjectHighlights": ["数学: 180点", "英語: 180点", "理科: 140点"],
    "commonTestRatio": "共通テスト50% / 個別試験50%",
    "selectionNotes": "共通テスト利用型は英語外部試験加点あり",
    "applicationDeadline": "2025年1月22日",
    "institutionType": "私立",
    "aiSummary": "総合力の高い理工学部。産業界とのつながりが強く、実践的な教育が特徴。キャンパス環境も優れている。",
    "sources": ["https://www.keio.ac.jp/"]
  }
]`
