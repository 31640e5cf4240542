// Ad-hoc maintenance: dump a user row and its profile children for debugging.
//
//	go run ./scripts/check_user -email user@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go-social-backend/config"
	"go-social-backend/internal/repository/postgres"
	"go-social-backend/pkg/database"
)

func main() {
	email := flag.String("email", "", "email of the account to inspect")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	user, err := userRepo.GetByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("get user: %v", err)
	}

	fmt.Printf("User #%d %s <%s> created=%s\n", user.ID, user.Username, user.Email, user.CreatedAt.Format("2006-01-02"))
	if user.ProfileImage != nil {
		fmt.Printf("  profile image: %s\n", *user.ProfileImage)
	}

	profile, err := profileRepo.GetOrCreateByUserID(ctx, user.ID)
	if err != nil {
		log.Fatalf("get profile: %v", err)
	}

	skills, _ := profileRepo.ListSkills(ctx, profile.ID)
	experiences, _ := profileRepo.ListExperiences(ctx, profile.ID)
	educations, _ := profileRepo.ListEducations(ctx, profile.ID)

	fmt.Printf("Profile #%d skills=%d experiences=%d educations=%d\n",
		profile.ID, len(skills), len(experiences), len(educations))
	for _, s := range skills {
		fmt.Printf("  skill: %s\n", s.Name)
	}
	for _, e := range experiences {
		fmt.Printf("  experience: %s @ %s\n", e.Title, e.Company)
	}
	for _, e := range educations {
		fmt.Printf("  education: %s, %s\n", e.School, e.Degree)
	}
}
