package models

// ApprovedStatus is the approval column value of a verified record.
const ApprovedStatus = "OK"

// Record is one submitted run as published in data.json.
type Record struct {
	Player      string `json:"ユーザー名"`
	Category    string `json:"大会種別"`
	Course      string `json:"コース名"`
	Time        string `json:"タイム"` // seconds, kept as text
	RecordDate  string `json:"記録日"`
	SubmittedAt string `json:"タイムスタンプ"`
	Control     string `json:"操作方法"`
	Version     string `json:"バージョン"`
	Approval    string `json:"承認状態"`
	VideoURL    string `json:"リンク,omitempty"`
	Note        string `json:"補足事項,omitempty"`
	Rank        string `json:"ランク,omitempty"`
}

// Approved reports whether the record passed review.
func (r Record) Approved() bool {
	return r.Approval == ApprovedStatus
}

// Course is one courseMaster row. RankList is only set for courses
// ranked by discrete achievement instead of time.
type Course struct {
	Category string   `json:"大会種別"`
	Name     string   `json:"コース名"`
	Link     string   `json:"コースlink,omitempty"`
	RankList RankList `json:"ランク一覧,omitempty"`
}

// Challenge is one challengeMaster row. RankList is ordered lowest to highest.
type Challenge struct {
	Name        string   `json:"チャレンジ名"`
	Description string   `json:"説明,omitempty"`
	RankList    RankList `json:"ランク一覧"`
}

// ChallengeRecord is one achievement submitted for a challenge.
type ChallengeRecord struct {
	Challenge  string `json:"チャレンジ名"`
	Player     string `json:"ユーザー名"`
	Rank       string `json:"ランク,omitempty"`
	AchievedAt string `json:"達成日"`
	VideoURL   string `json:"リンク,omitempty"`
	Approval   string `json:"承認状態"`
}

// Approved reports whether the achievement passed review.
func (r ChallengeRecord) Approved() bool {
	return r.Approval == ApprovedStatus
}

// Version is one versionMaster row.
type Version struct {
	Label string
}

// RecordsDocument is the shape of data.json.
type RecordsDocument struct {
	Records       []Record  `json:"records"`
	CourseMaster  []Course  `json:"courseMaster"`
	VersionMaster []Version `json:"versionMaster"`
}

// ChallengeDocument is the shape of challenge.json.
type ChallengeDocument struct {
	ChallengeMaster  []Challenge       `json:"challengeMaster"`
	ChallengeRecords []ChallengeRecord `json:"challengeRecords"`
}
