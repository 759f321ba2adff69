package models

// SortKey names a sortable column.
type SortKey string

const (
	SortByPlayer      SortKey = "player"
	SortByTime        SortKey = "time"
	SortByRecordDate  SortKey = "record_date"
	SortBySubmittedAt SortKey = "submitted_at"
	SortByAchievedAt  SortKey = "achieved_at"
)

// ParseSortKey maps a query value to a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortByPlayer, SortByTime, SortByRecordDate, SortBySubmittedAt, SortByAchievedAt:
		return k, true
	}
	return "", false
}

// SortOrder is the sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// ApprovalFilter is the exclusive approval choice.
type ApprovalFilter string

const (
	ApprovalAll      ApprovalFilter = "all"
	ApprovalApproved ApprovalFilter = "approved"
)

// RecordMode selects between every record and one best record per player.
type RecordMode string

const (
	RecordModeAll  RecordMode = "all"
	RecordModeBest RecordMode = "best"
)

// ControlType is a control method and its display icon.
type ControlType struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ControlTypes is the fixed set of control methods in display order.
var ControlTypes = []ControlType{
	{Name: "タッチ", Icon: "👆"},
	{Name: "タッチ(箒あり)", Icon: "👆🧹"},
	{Name: "コントローラー", Icon: "🎮"},
	{Name: "コントローラー(箒あり)", Icon: "🎮🧹"},
}

// ControlNames returns the names of ControlTypes in order.
func ControlNames() []string {
	names := make([]string, len(ControlTypes))
	for i, c := range ControlTypes {
		names[i] = c.Name
	}
	return names
}

// ControlIcon returns the icon for a control method, the raw value for an
// unknown one, or "-" when empty.
func ControlIcon(name string) string {
	for _, c := range ControlTypes {
		if c.Name == name {
			return c.Icon
		}
	}
	if name == "" {
		return "-"
	}
	return name
}
