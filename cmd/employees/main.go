package main

import (
	"pawbook/internal/employees/handler"
	"pawbook/internal/employees/repository"
	"pawbook/internal/employees/service"
	"pawbook/internal/employees/validator"
	"pawbook/pkg/app"
	"pawbook/pkg/config"
	dbmongo "pawbook/pkg/db/mongo"
)

const ServiceName = "employees"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Employees service")
	employeeService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewEmployeeHandler(employeeService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.EmployeeService {
	employeeValidator := validator.NewEmployeeValidator(cfg.Log)
	employeeRepo := repository.NewMongoEmployeeRepository(cfg)
	shiftRepo := repository.NewMongoShiftRepository(cfg)

	txManager := dbmongo.NewTransactionManager(cfg.Client.Mongo)

	employeeService := service.NewEmployeeService(
		employeeRepo,
		shiftRepo,
		txManager,
		employeeValidator,
		cfg,
	)

	cfg.Log.Info("Employee service initialized", "database", cfg.MongoDatabaseName)
	return employeeService
}
