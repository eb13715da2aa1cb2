package main

import (
	"ambulance/config"
	authControllers "ambulance/controllers/auth"
	"ambulance/database"
	authRoutes "ambulance/routers/authRoutes"
	userRoutes "ambulance/routers/userRoutes"
	"ambulance/services/otpService"
	"ambulance/services/userService"
	"ambulance/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	cfg := config.AppConfig
	db := database.Database.Db

	otp, users := buildServices(cfg, db)

	scheduler, err := otpService.InitializeOTPScheduler(otp, cfg.OTPSweepSchedule)
	if err != nil {
		log.Fatalf("Failed to start OTP scheduler: %v", err)
	}

	app := setupApp(cfg, otp, users)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		<-scheduler.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// buildSenders picks the real delivery channels available in cfg. A nil
// sender means that channel always falls back to the console.
func buildSenders(cfg *config.Config) (email utils.Sender, sms utils.Sender) {
	switch {
	case cfg.SendGridApiKey != "":
		email = utils.NewSendGridSender(cfg.SendGridApiKey, cfg.EmailSenderName, cfg.EmailSender)
	case cfg.SMTPHost != "":
		email = utils.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.Password, cfg.EmailSenderName, cfg.EmailSender)
	}

	if cfg.SMSEnabled() {
		sms = utils.NewTwilioSender(cfg.TwilioApiURL, cfg.TwilioAccountSid, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	return email, sms
}

func buildServices(cfg *config.Config, db *gorm.DB) (*otpService.OTPService, *userService.UserService) {
	email, sms := buildSenders(cfg)

	otp := otpService.NewOTPService(db, otpService.Options{
		Expiry:    cfg.OTPExpiry(),
		Retention: cfg.OTPRetention(),
		Email:     email,
		SMS:       sms,
	})
	users := userService.NewUserService(db, cfg.SaltRound)
	return otp, users
}

func setupApp(cfg *config.Config, otp *otpService.OTPService, users *userService.UserService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Smart Ambulance System authentication API",
			"status":  "running",
		})
	})

	authRoutes.SetupAuthRoutes(app, authControllers.NewAuthController(otp, users), users)
	userRoutes.SetupUserRoutes(app, users)

	return app
}
