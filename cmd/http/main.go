package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/app/delivery/http/routers"
	"teleclinic-service/internal/app/drivers/database"
	"teleclinic-service/internal/app/drivers/logger"
	mailerdriver "teleclinic-service/internal/app/drivers/mailer"
	"teleclinic-service/internal/app/drivers/messaging"
	storagedriver "teleclinic-service/internal/app/drivers/storage"
	"teleclinic-service/internal/app/services/core/appointments"
	"teleclinic-service/internal/app/services/core/auth"
	"teleclinic-service/internal/app/services/core/notifications"
	"teleclinic-service/internal/app/services/core/payments"
	"teleclinic-service/internal/app/services/core/prescriptions"
	"teleclinic-service/internal/app/services/core/users"
	"teleclinic-service/internal/app/services/core/vaccinations"
	"teleclinic-service/internal/app/services/shared/locker"
	"teleclinic-service/internal/app/services/shared/mailer"
	"teleclinic-service/internal/app/services/shared/notificationqueue"
	"teleclinic-service/internal/app/services/shared/payment_gateway"
	redisrepo "teleclinic-service/internal/app/services/shared/redis"
	"teleclinic-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootstrapLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoClient:    database.NewMongoDB(driverConfig, bootstrapLog),
		Redis:          database.NewRedisClient(driverConfig, bootstrapLog),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig, bootstrapLog),
		Minio:          storagedriver.NewMinio(driverConfig, bootstrapLog),
		Log:            log,
		BootstrapLog:   bootstrapLog,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootstrapLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	bootstrapLog.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Printf("Error while closing application drivers: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Log)
	minioStorage := storage.NewMinioStorage(bootstrap.Minio)
	gatewayService := payment_gateway.NewMockGatewayService(bootstrap.InternalConfig, bootstrap.Log)
	mailerService := mailer.NewMailerService(mailerdriver.NewSMTPClient(bootstrap.DriverConfig), bootstrap.Log)

	queueService, err := notificationqueue.NewService(
		bootstrap.RabbitMQ,
		bootstrap.Log,
		bootstrap.InternalConfig.Notification.QueueName,
		bootstrap.InternalConfig.Notification.DeadLetterQueueName,
		bootstrap.InternalConfig.Notification.WorkerPrefetch,
	)
	if err != nil {
		bootstrap.BootstrapLog.Fatalf("Failed to initialize notification queue: %v", err)
	}

	// Middlewares
	mw := middlewares.New(bootstrap.Log, redisRepository, bootstrap.InternalConfig)

	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Users & auth
	userRepository := users.NewUserMongoRepository(bootstrap.MongoClient, dbName)
	authUsecase := auth.NewAuthUsecase(userRepository, redisRepository, bootstrap.InternalConfig, bootstrap.Log)
	authController := controllers.NewAuthController(bootstrap.Log, authUsecase)

	// Notifications
	notificationRepository := notifications.NewNotificationMongoRepository(bootstrap.MongoClient, dbName)
	notificationPublisher := notifications.NewQueuePublisher(queueService, userRepository, bootstrap.Log)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, redisRepository, notificationPublisher, bootstrap.InternalConfig, bootstrap.Log)
	notificationController := controllers.NewNotificationController(bootstrap.Log, notificationUsecase)

	// Appointments & payments
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)
	paymentRepository := payments.NewPaymentMongoRepository(bootstrap.MongoClient, dbName)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, paymentRepository, notificationUsecase, bootstrap.Log)
	appointmentController := controllers.NewAppointmentController(bootstrap.Log, appointmentUsecase)

	paymentUsecase := payments.NewPaymentUsecase(
		appointmentRepository,
		appointmentUsecase,
		paymentRepository,
		gatewayService,
		notificationUsecase,
		bootstrap.InternalConfig,
		bootstrap.Log,
	)
	paymentController := controllers.NewPaymentController(bootstrap.Log, paymentUsecase)

	// Vaccinations
	vaccinationRepository := vaccinations.NewVaccinationMongoRepository(bootstrap.MongoClient, dbName)
	vaccinationUsecase := vaccinations.NewVaccinationUsecase(vaccinationRepository, notificationUsecase, bootstrap.Log)
	vaccinationController := controllers.NewVaccinationController(bootstrap.Log, vaccinationUsecase)

	// Prescriptions
	prescriptionRepository := prescriptions.NewPrescriptionMongoRepository(bootstrap.MongoClient, dbName)
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(prescriptionRepository, minioStorage, notificationUsecase, bootstrap.DriverConfig, bootstrap.Log)
	prescriptionController := controllers.NewPrescriptionController(bootstrap.Log, prescriptionUsecase, bootstrap.InternalConfig)

	// Email delivery worker
	worker := notifications.NewWorker(bootstrap.Log, bootstrap.InternalConfig, lockerService, queueService, mailerService)
	bootstrap.WorkerStop = worker.Start(context.Background())

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		mw,
		authController,
		appointmentController,
		paymentController,
		notificationController,
		vaccinationController,
		prescriptionController,
	)
}
