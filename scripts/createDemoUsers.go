package main

import (
	"ambulance/config"
	"ambulance/database"
	"ambulance/models"
	"ambulance/services/userService"
	"context"
	"log"
)

const demoPassword = "demo123"

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	users := userService.NewUserService(database.Database.Db, config.AppConfig.SaltRound)
	ctx := context.Background()

	demoUsers := []userService.CreateUserInput{
		{Username: "driver@demo.com", Email: "driver@demo.com", FirstName: "Demo", LastName: "Driver", UserType: models.UserTypeDriver},
		{Username: "hospital@demo.com", Email: "hospital@demo.com", FirstName: "Demo", LastName: "Hospital", UserType: models.UserTypeHospital},
		{Username: "admin@demo.com", Email: "admin@demo.com", FirstName: "Demo", LastName: "Admin", UserType: models.UserTypeAdmin, IsStaff: true},
	}

	for _, in := range demoUsers {
		in.Password = demoPassword
		user, created, err := users.EnsureUser(ctx, in)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", in.Username, err)
		}
		if created {
			log.Printf("Created %s user: %s", user.UserType, user.Username)
		} else {
			log.Printf("%s user already exists: %s", user.UserType, user.Username)
		}
	}

	log.Println("Demo users ready.")
}
