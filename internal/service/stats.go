package service

import (
	"context"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/shopspring/decimal"
)

// Dashboard figures with no backing data yet.
const (
	mockActiveStudents = 1337
	mockMonthlyRevenue = "₹45,670"
	mockUptime         = "99.9%"
)

type StatsService struct {
	Courses repo.CourseStore
	Orders  repo.OrderStore
}

type Stats struct {
	TotalCourses     int64                      `json:"totalCourses"`
	TotalOrders      int                        `json:"totalOrders"`
	OrdersByStatus   map[models.OrderStatus]int `json:"ordersByStatus"`
	CompletedRevenue string                     `json:"completedRevenue"`
	ActiveStudents   int                        `json:"activeStudents"`
	MonthlyRevenue   string                     `json:"monthlyRevenue"`
	Uptime           string                     `json:"uptime"`
}

func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	total, err := s.Courses.CountActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}

	byStatus := make(map[models.OrderStatus]int)
	revenue := decimal.Zero
	for _, o := range orders {
		byStatus[o.Status]++
		if o.Status != models.StatusCompleted {
			continue
		}
		amt, err := money.Parse(o.TotalAmount)
		if err != nil {
			return nil, err
		}
		revenue = revenue.Add(amt)
	}

	return &Stats{
		TotalCourses:     total,
		TotalOrders:      len(orders),
		OrdersByStatus:   byStatus,
		CompletedRevenue: money.Format(revenue),
		ActiveStudents:   mockActiveStudents,
		MonthlyRevenue:   mockMonthlyRevenue,
		Uptime:           mockUptime,
	}, nil
}
