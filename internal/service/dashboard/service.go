package dashboard

import (
	"context"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays      = 7
	latestCheckIns = 10
	dateLayout     = validator.DateLayout
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) currentShiftDate() time.Time {
	return shift.CurrentShiftDate(s.now().In(s.loc))
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	shiftDate := s.currentShiftDate()
	from := shiftDate.AddDate(0, 0, -(trendDays - 1))

	var (
		stats  dashboard.ShiftStatsResponse
		trend  []dashboard.TrendItem
		latest []dashboard.CheckInItem
		breaks dashboard.BreakUsageResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's counts
	g.Go(func() error {
		raw, err := s.DashboardRepository.GetShiftStats(gCtx, shiftDate)
		if err != nil {
			return err
		}
		stats = buildShiftStats(shiftDate, raw)
		return nil
	})

	// 2. 7-day trend
	g.Go(func() error {
		counts, err := s.GetDailyCounts(gCtx, from, shiftDate)
		if err != nil {
			return err
		}
		trend = fillTrend(from, shiftDate, counts)
		return nil
	})

	// 3. Latest check-ins
	g.Go(func() error {
		records, err := s.GetLatestCheckIns(gCtx, shiftDate, latestCheckIns)
		if err != nil {
			return err
		}
		latest = make([]dashboard.CheckInItem, 0, len(records))
		for _, r := range records {
			latest = append(latest, dashboard.CheckInItem{
				EmployeeName:  r.EmployeeName,
				EmployeeCode:  r.EmployeeCode,
				CheckInTime:   r.CheckInTime.In(s.loc).Format(time.RFC3339),
				Status:        r.Status,
				LateByMinutes: r.LateByMinutes,
			})
		}
		return nil
	})

	// 4. Break usage
	g.Go(func() error {
		usage, err := s.GetBreakUsage(gCtx, shiftDate)
		if err != nil {
			return err
		}
		breaks.ByType = make([]dashboard.BreakTypeUsage, 0, len(usage))
		for _, u := range usage {
			breaks.TotalBreaks += u.Count
			breaks.TotalMinutes += u.Minutes
			breaks.ByType = append(breaks.ByType, dashboard.BreakTypeUsage{
				BreakType: u.BreakType,
				Count:     u.Count,
				Minutes:   u.Minutes,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		ShiftDate:      shiftDate.Format(dateLayout),
		Today:          stats,
		Trend:          trend,
		LatestCheckIns: latest,
		Breaks:         breaks,
	}, nil
}

// GetShiftStats returns the counts for a single shift date
func (s *DashboardServiceImpl) GetShiftStats(ctx context.Context, date string) (*dashboard.ShiftStatsResponse, error) {
	shiftDate := s.currentShiftDate()
	if date != "" {
		parsed, ok := validator.IsValidDate(date)
		if !ok {
			return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
		}
		shiftDate = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)
	}

	raw, err := s.DashboardRepository.GetShiftStats(ctx, shiftDate)
	if err != nil {
		return nil, err
	}

	stats := buildShiftStats(shiftDate, raw)
	return &stats, nil
}

func buildShiftStats(shiftDate time.Time, raw *dashboard.ShiftStats) dashboard.ShiftStatsResponse {
	onTimeRate := decimal.Zero
	if raw.CheckedIn > 0 {
		onTimeRate = decimal.NewFromInt(raw.Present).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(raw.CheckedIn))
	}

	return dashboard.ShiftStatsResponse{
		ShiftDate:          shiftDate.Format(dateLayout),
		TotalEmployees:     raw.ActiveEmployees,
		CheckedIn:          raw.CheckedIn,
		Present:            raw.Present,
		Late:               raw.Late,
		Absent:             max(raw.ActiveEmployees-raw.CheckedIn, 0),
		CurrentlyWorking:   raw.CurrentlyWorking,
		OnTimeRate:         onTimeRate.StringFixed(1),
		TotalOvertimeHours: shift.OvertimeHours(int(raw.OvertimeMinutes)).StringFixed(2),
	}
}

// fillTrend returns one item per date in [from, to], zero for dates without rows.
func fillTrend(from, to time.Time, counts []dashboard.DailyCount) []dashboard.TrendItem {
	byDate := make(map[string]dashboard.DailyCount, len(counts))
	for _, c := range counts {
		byDate[c.Date.Format(dateLayout)] = c
	}

	var trend []dashboard.TrendItem
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		c := byDate[key]
		trend = append(trend, dashboard.TrendItem{
			Date:    key,
			Present: c.Present,
			Late:    c.Late,
			Absent:  c.Absent,
		})
	}
	return trend
}
