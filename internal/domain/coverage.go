package domain

// MissingShift 描述一个需要找人顶替的空缺班次
type MissingShift struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Position  string `json:"position"`
}
