package models

// Database interface defines operations for the optional history index
type Database interface {
	SaveAnalysis(a *Analysis) error
	GetRecent(limit int) ([]AnalysisRecord, error)
	Close() error
}

// AnalysisRecord is one row of the history index: the summary of a past
// run over one file, without the per-observation detail.
type AnalysisRecord struct {
	AnalyzedAt    string  `json:"analyzed_at"`
	Filename      string  `json:"filename"`
	Target        string  `json:"target"`
	TotalPings    int     `json:"total_pings"`
	Transmitted   int     `json:"transmitted"`
	PacketLoss    float64 `json:"packet_loss"`
	AvgRTT        float64 `json:"avg_rtt"`
	MinRTT        float64 `json:"min_rtt"`
	MaxRTT        float64 `json:"max_rtt"`
	MissingCount  int     `json:"missing_count"`
	AbnormalCount int     `json:"abnormal_count"`
	HasTimestamps bool    `json:"has_timestamps"`
}
