package repository

import (
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	GetDailyRevenue(clinicID *uuid.UUID, startDate, endDate time.Time) ([]DailyRevenueData, error)
	GetOverview(clinicID *uuid.UUID) (*OverviewStats, error)
	GetAppointmentCounts(clinicID *uuid.UUID, startDate, endDate time.Time) ([]DailyAppointmentData, error)
}

// DailyRevenueData for revenue chart data
type DailyRevenueData struct {
	Date     string `json:"date"`
	Revenue  int64  `json:"revenue"`
	Vouchers int64  `json:"vouchers"`
}

// DailyAppointmentData for appointment chart data
type DailyAppointmentData struct {
	Date      string `json:"date"`
	Booked    int64  `json:"booked"`
	Completed int64  `json:"completed"`
	NoShow    int64  `json:"no_show"`
}

// OverviewStats for the dashboard header
type OverviewStats struct {
	TotalCustomers    int64 `json:"total_customers"`
	OutstandingDebt   int64 `json:"outstanding_debt"`
	ConfirmedServices int64 `json:"confirmed_services"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetDailyRevenue(clinicID *uuid.UUID, startDate, endDate time.Time) ([]DailyRevenueData, error) {
	var results []DailyRevenueData

	q := r.db.Model(&model.PaymentVoucher{}).
		Select(`
			DATE(payment_date) as date,
			COALESCE(SUM(total_amount), 0) as revenue,
			COUNT(*) as vouchers
		`).
		Where("payment_date BETWEEN ? AND ?", startDate, endDate)
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}

	rows, err := q.Group("DATE(payment_date)").Order("date ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyRevenueData
		if err := rows.Scan(&data.Date, &data.Revenue, &data.Vouchers); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *reportRepo) GetOverview(clinicID *uuid.UUID) (*OverviewStats, error) {
	var stats OverviewStats

	customers := r.db.Model(&model.Customer{})
	services := r.db.Model(&model.ConsultedService{}).Where("status = ?", model.ServiceConfirmed)
	if clinicID != nil {
		customers = customers.Where("clinic_id = ?", *clinicID)
		services = services.Where("clinic_id = ?", *clinicID)
	}

	customers.Count(&stats.TotalCustomers)
	services.Count(&stats.ConfirmedServices)

	debt := r.db.Model(&model.ConsultedService{}).
		Where("status = ?", model.ServiceConfirmed).
		Select("COALESCE(SUM(debt), 0)")
	if clinicID != nil {
		debt = debt.Where("clinic_id = ?", *clinicID)
	}
	debt.Scan(&stats.OutstandingDebt)

	return &stats, nil
}

func (r *reportRepo) GetAppointmentCounts(clinicID *uuid.UUID, startDate, endDate time.Time) ([]DailyAppointmentData, error) {
	var results []DailyAppointmentData

	q := r.db.Model(&model.Appointment{}).
		Select(`
			DATE(scheduled_at) as date,
			COUNT(*) as booked,
			COALESCE(SUM(CASE WHEN check_out_time IS NOT NULL THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN is_no_show THEN 1 ELSE 0 END), 0) as no_show
		`).
		Where("scheduled_at BETWEEN ? AND ?", startDate, endDate)
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}

	rows, err := q.Group("DATE(scheduled_at)").Order("date ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyAppointmentData
		if err := rows.Scan(&data.Date, &data.Booked, &data.Completed, &data.NoShow); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
