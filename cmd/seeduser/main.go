// Command seeduser provisions a user account directly in the store. The
// HTTP API deliberately exposes no registration route, so account creation
// happens out of band with this tool.
//
//	seeduser -id 1 -username alice -email a@x.com -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
)

type seedInput struct {
	ID       string `validate:"omitempty,max=36"`
	Username string `validate:"required,max=20"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=6"`
}

func main() {
	var in seedInput
	flag.StringVar(&in.ID, "id", "", "user id (defaults to a generated uuid)")
	flag.StringVar(&in.Username, "username", "", "unique username, at most 20 characters")
	flag.StringVar(&in.Email, "email", "", "unique email address")
	flag.StringVar(&in.Password, "password", "", "password, hashed before storage")
	flag.Parse()

	if err := validator.New().Struct(in); err != nil {
		log.Fatalf("Invalid input: %v", err)
	}

	_ = godotenv.Load()
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "site.db")
	viper.AutomaticEnv()

	db, err := database.Connect(context.Background(), viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:       in.ID,
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := repositories.NewGORMUserRepository(db).Create(user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
}
