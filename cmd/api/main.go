package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-dental-erp/internal/handler"
	"go-dental-erp/internal/middleware"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/service"
	"go-dental-erp/internal/ws"
	"go-dental-erp/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.Clinic{},
		&model.Employee{},
		&model.Customer{},
		&model.DentalService{},
		&model.ConsultedService{},
		&model.Appointment{},
		&model.PaymentVoucher{},
		&model.PaymentVoucherDetail{},
		&model.TreatmentLog{},
		&model.LaboOrder{},
		&model.Supplier{},
		&model.Material{},
		&model.MaterialMove{},
		&model.StatusAudit{},
	)

	// Sequences behind the human-readable codes (KH-000001, PT-000001)
	db.Exec("CREATE SEQUENCE IF NOT EXISTS customer_code_seq START 1")
	db.Exec("CREATE SEQUENCE IF NOT EXISTS voucher_code_seq START 1")

	// 3. Seed default clinic and admin account
	seedClinicAndAdmin(db)

	// 4. Setup WebSocket Hub (front-desk live notifications)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	clinicRepo := repository.NewClinicRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	dsRepo := repository.NewDentalServiceRepo(db)
	csRepo := repository.NewConsultedServiceRepo(db)
	apptRepo := repository.NewAppointmentRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	logRepo := repository.NewTreatmentLogRepo(db)
	laboRepo := repository.NewLaboOrderRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	auditRepo := repository.NewStatusAuditRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo, clinicRepo)
	customerService := service.NewCustomerService(customerRepo, auditRepo)
	csService := service.NewConsultedServiceService(csRepo, customerRepo, dsRepo, auditRepo)
	apptService := service.NewAppointmentService(apptRepo, customerRepo, csRepo, auditRepo, wsHub)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo, wsHub)
	logService := service.NewTreatmentLogService(logRepo, customerRepo)
	laboService := service.NewLaboService(laboRepo, csRepo, auditRepo)
	masterService := service.NewMasterDataService(dsRepo, csRepo)
	materialService := service.NewMaterialService(materialRepo)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	customerHandler := handler.NewCustomerHandler(customerService)
	csHandler := handler.NewConsultedServiceHandler(csService)
	apptHandler := handler.NewAppointmentHandler(apptService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	logHandler := handler.NewTreatmentLogHandler(logService)
	laboHandler := handler.NewLaboHandler(laboService)
	masterHandler := handler.NewMasterDataHandler(masterService)
	materialHandler := handler.NewMaterialHandler(materialService)
	reportHandler := handler.NewReportHandler(reportService)
	clinicHandler := handler.NewClinicHandler(clinicRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Dental Clinic ERP v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(employeeRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(employeeRepo))

	// Customers + sales pipeline
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Post("/customers/:id/stage", customerHandler.ChangeStage)
	protected.Get("/customers/:id/stage-history", customerHandler.GetStageHistory)

	// Consulted services
	protected.Post("/consulted-services", csHandler.Create)
	protected.Put("/consulted-services/:id/financials", csHandler.UpdateFinancials)
	protected.Post("/consulted-services/:id/confirm", csHandler.Confirm)
	protected.Get("/consulted-services/:id/history", csHandler.GetHistory)
	protected.Get("/customers/:customerId/consulted-services", csHandler.GetByCustomer)

	// Appointments
	protected.Get("/appointments", apptHandler.GetSchedule)
	protected.Post("/appointments", apptHandler.Create)
	protected.Post("/appointments/:id/check-in", apptHandler.CheckIn)
	protected.Post("/appointments/:id/check-out", apptHandler.CheckOut)
	protected.Post("/appointments/:id/cancel", apptHandler.Cancel)
	protected.Post("/appointments/:id/no-show", apptHandler.MarkNoShow)
	protected.Delete("/appointments/:id", apptHandler.Delete)
	protected.Get("/appointments/:id/history", apptHandler.GetHistory)

	// Payments
	protected.Post("/payment-vouchers", paymentHandler.CreateVoucher)
	protected.Get("/payment-vouchers/:id", paymentHandler.GetByID)
	protected.Get("/customers/:customerId/payment-vouchers", paymentHandler.GetByCustomer)

	// Treatment logs
	protected.Post("/treatment-logs", logHandler.Create)
	protected.Put("/treatment-logs/:id", logHandler.Update)
	protected.Get("/customers/:customerId/treatment-logs", logHandler.GetByCustomer)

	// Labo orders
	protected.Get("/labo-orders", laboHandler.GetAll)
	protected.Post("/labo-orders", laboHandler.Create)
	protected.Post("/labo-orders/:id/status", laboHandler.ChangeStatus)
	protected.Get("/labo-orders/:id/history", laboHandler.GetHistory)

	// Materials & suppliers
	protected.Get("/materials", materialHandler.GetAll)
	protected.Post("/materials", materialHandler.Create)
	protected.Post("/materials/moves", materialHandler.RecordMove)
	protected.Get("/suppliers", materialHandler.GetSuppliers)
	protected.Post("/suppliers", middleware.RequireAdmin(), materialHandler.CreateSupplier)

	// Service catalog (reads for everyone, writes admin-only)
	protected.Get("/dental-services", masterHandler.GetServices)
	protected.Post("/dental-services", middleware.RequireAdmin(), masterHandler.CreateService)
	protected.Put("/dental-services/:id", middleware.RequireAdmin(), masterHandler.UpdateService)
	protected.Post("/dental-services/:id/migrate", middleware.RequireAdmin(), masterHandler.MigrateService)

	// Reports
	protected.Get("/reports/overview", reportHandler.GetOverview)
	protected.Get("/reports/daily-revenue", reportHandler.GetDailyRevenue)
	protected.Get("/reports/appointment-counts", reportHandler.GetAppointmentCounts)

	// Employees (admin checks live in the service layer)
	protected.Get("/employees", employeeHandler.GetEmployees)
	protected.Get("/employees/:id", employeeHandler.GetEmployee)
	protected.Post("/employees", employeeHandler.CreateEmployee)
	protected.Put("/employees/:id", employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", employeeHandler.DeleteEmployee)

	// Clinics
	protected.Get("/clinics", clinicHandler.GetAll)
	protected.Post("/clinics", middleware.RequireAdmin(), clinicHandler.Create)
	protected.Put("/clinics/:id", middleware.RequireAdmin(), clinicHandler.Update)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedClinicAndAdmin creates the default clinic and admin account on first boot.
func seedClinicAndAdmin(db *gorm.DB) {
	clinicRepo := repository.NewClinicRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)

	clinic, err := clinicRepo.FindByCode("HQ")
	if err == gorm.ErrRecordNotFound {
		clinic = &model.Clinic{
			Code:     "HQ",
			Name:     "Phòng khám trung tâm",
			IsActive: true,
		}
		if err := clinicRepo.Create(clinic); err != nil {
			log.Printf("Warning: Failed to seed default clinic: %v", err)
			return
		}
		log.Println("✅ Default clinic created: HQ")
	} else if err != nil {
		log.Printf("Warning: Failed to look up default clinic: %v", err)
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	if _, err := employeeRepo.FindByEmail(adminEmail); err == nil {
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	admin := &model.Employee{
		Email:    adminEmail,
		FullName: "Quản trị viên",
		Role:     model.RoleAdmin,
		JobTitle: model.JobOther,
		ClinicID: clinic.ID,
		IsActive: true,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := employeeRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin account: %v", err)
	} else {
		log.Printf("✅ Admin account created: %s", adminEmail)
	}
}
