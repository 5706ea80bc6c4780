package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	ShiftDate      string             `json:"shift_date"`
	Today          ShiftStatsResponse `json:"today"`
	Trend          []TrendItem        `json:"trend"`
	LatestCheckIns []CheckInItem      `json:"latest_check_ins"`
	Breaks         BreakUsageResponse `json:"breaks"`
}

// ========== SHIFT STATS ==========

// ShiftStatsResponse summarises one shift date
type ShiftStatsResponse struct {
	ShiftDate          string `json:"shift_date"`
	TotalEmployees     int64  `json:"total_employees"`
	CheckedIn          int64  `json:"checked_in"`
	Present            int64  `json:"present"`
	Late               int64  `json:"late"`
	Absent             int64  `json:"absent"` // active employees without a check-in
	CurrentlyWorking   int64  `json:"currently_working"`
	OnTimeRate         string `json:"on_time_rate"` // percent of check-ins, 1 decimal
	TotalOvertimeHours string `json:"total_overtime_hours"`
}

// ========== TREND (line chart) ==========

type TrendItem struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Present int64  `json:"present"`
	Late    int64  `json:"late"`
	Absent  int64  `json:"absent"`
}

// ========== LATEST CHECK-INS ==========

type CheckInItem struct {
	EmployeeName  string `json:"employee_name"`
	EmployeeCode  string `json:"employee_code"`
	CheckInTime   string `json:"check_in_time"`
	Status        string `json:"status"`
	LateByMinutes int    `json:"late_by_minutes"`
}

// ========== BREAK USAGE ==========

type BreakUsageResponse struct {
	TotalBreaks  int64            `json:"total_breaks"`
	TotalMinutes int64            `json:"total_minutes"`
	ByType       []BreakTypeUsage `json:"by_type"`
}

type BreakTypeUsage struct {
	BreakType string `json:"break_type"`
	Count     int64  `json:"count"`
	Minutes   int64  `json:"minutes"`
}
