package service

import (
	"time"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/repository"

	"github.com/google/uuid"
)

// ReportService serves daily aggregates over denormalized financial fields.
// Reads run outside any transaction; a just-committed voucher may lag one call.
type ReportService interface {
	GetDailyRevenue(days int, actor authz.Actor) ([]repository.DailyRevenueData, error)
	GetOverview(actor authz.Actor) (*repository.OverviewStats, error)
	GetAppointmentCounts(days int, actor authz.Actor) ([]repository.DailyAppointmentData, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) clinicScope(actor authz.Actor) *uuid.UUID {
	if actor.IsAdmin() {
		return nil
	}
	return &actor.ClinicID
}

func (s *reportService) GetDailyRevenue(days int, actor authz.Actor) ([]repository.DailyRevenueData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.reportRepo.GetDailyRevenue(s.clinicScope(actor), startDate, endDate)
}

func (s *reportService) GetOverview(actor authz.Actor) (*repository.OverviewStats, error) {
	return s.reportRepo.GetOverview(s.clinicScope(actor))
}

func (s *reportService) GetAppointmentCounts(days int, actor authz.Actor) ([]repository.DailyAppointmentData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.reportRepo.GetAppointmentCounts(s.clinicScope(actor), startDate, endDate)
}
