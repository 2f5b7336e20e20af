// Package revenue aggregates revenue records and applied fees into reports.
package revenue

import (
	"context"
	"time"

	"bazari/internal/repositories"
)

// Query selects the reporting window. A zero Start defaults to the last 30 days.
type Query struct {
	Period string
	Start  time.Time
	End    time.Time
	Source string
}

type SourceTotal struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
}

type TypeTotal struct {
	Count           int     `json:"count"`
	TotalFees       float64 `json:"totalFees"`
	TotalBaseAmount float64 `json:"totalBaseAmount"`
	Currency        string  `json:"currency"`
}

type Summary struct {
	TotalRevenue      float64   `json:"totalRevenue"`
	TotalFees         float64   `json:"totalFees"`
	TotalTransactions int       `json:"totalTransactions"`
	Period            string    `json:"period"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
}

type Report struct {
	Summary         Summary                `json:"summary"`
	RevenueBySource map[string]SourceTotal `json:"revenueBySource"`
	FeesByType      map[string]TypeTotal   `json:"feesByType"`
	DailyRevenue    map[string]float64     `json:"dailyRevenue"`
}

type Service interface {
	GetReport(ctx context.Context, q Query) (*Report, error)
}

type service struct {
	repo repositories.RevenueRepository
}

func NewService(repo repositories.RevenueRepository) Service {
	if repo == nil {
		panic("revenue repository is required")
	}
	return &service{repo: repo}
}

func (s *service) GetReport(ctx context.Context, q Query) (*Report, error) {
	start, end := q.Start, q.End
	if start.IsZero() {
		end = time.Now()
		start = end.AddDate(0, 0, -30)
	}
	if end.IsZero() {
		end = time.Now()
	}

	records, err := s.repo.ListBetween(start, end, q.Source)
	if err != nil {
		return nil, err
	}
	fees, err := s.repo.FeesBetween(start, end)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RevenueBySource: make(map[string]SourceTotal),
		FeesByType:      make(map[string]TypeTotal),
		DailyRevenue:    make(map[string]float64),
	}

	var totalRevenue float64
	for _, record := range records {
		totalRevenue += record.Amount

		bySource := report.RevenueBySource[record.Source]
		bySource.Count++
		bySource.TotalAmount += record.Amount
		bySource.Currency = record.Currency
		report.RevenueBySource[record.Source] = bySource

		day := record.Date.UTC().Format("2006-01-02")
		report.DailyRevenue[day] += record.Amount
	}

	var totalFees float64
	for _, fee := range fees {
		totalFees += fee.FeeAmount

		byType := report.FeesByType[fee.FeeType]
		byType.Count++
		byType.TotalFees += fee.FeeAmount
		byType.TotalBaseAmount += fee.BaseAmount
		byType.Currency = fee.Currency
		report.FeesByType[fee.FeeType] = byType
	}

	period := q.Period
	if period == "" {
		period = "MONTHLY"
	}
	report.Summary = Summary{
		TotalRevenue:      totalRevenue,
		TotalFees:         totalFees,
		TotalTransactions: len(fees),
		Period:            period,
		StartDate:         start,
		EndDate:           end,
	}

	return report, nil
}
