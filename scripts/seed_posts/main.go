// Ad-hoc maintenance: seed demo users and posts for local development.
//
//	go run ./scripts/seed_posts
package main

import (
	"context"
	"fmt"
	"log"

	"go-social-backend/config"
	"go-social-backend/pkg/database"
	"go-social-backend/pkg/password"
)

type seedUser struct {
	username string
	email    string
	posts    []seedPost
}

type seedPost struct {
	content  string
	title    string
	tags     []string
	featured bool
}

var seedUsers = []seedUser{
	{
		username: "alice",
		email:    "alice@example.com",
		posts: []seedPost{
			{content: "Shipped our new onboarding flow today. Sign-up conversion is already up.", title: "Onboarding launch", tags: []string{"product", "launch"}, featured: true},
			{content: "Notes from refactoring a legacy billing module without downtime.", title: "Zero-downtime refactors", tags: []string{"engineering"}},
		},
	},
	{
		username: "bob",
		email:    "bob@example.com",
		posts: []seedPost{
			{content: "Looking for recommendations on observability stacks for a small team.", tags: []string{"devops", "observability"}},
		},
	},
}

const seedPasswordHashSource = "Seed123!pass"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(seedPasswordHashSource)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	ctx := context.Background()
	for _, u := range seedUsers {
		var userID int64
		err := pool.QueryRow(ctx,
			`INSERT INTO users (username, email, password_hash, created_at, updated_at)
             VALUES ($1, $2, $3, NOW(), NOW())
             ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
             RETURNING id`,
			u.username, u.email, hash,
		).Scan(&userID)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.username, err)
		}

		for _, p := range u.posts {
			var title interface{}
			if p.title != "" {
				title = p.title
			}
			_, err := pool.Exec(ctx,
				`INSERT INTO posts (user_id, content, title, tags, is_published, is_featured, created_at, updated_at)
                 VALUES ($1, $2, $3, $4, TRUE, $5, NOW(), NOW())`,
				userID, p.content, title, p.tags, p.featured)
			if err != nil {
				log.Fatalf("seed post for %s: %v", u.username, err)
			}
		}
		fmt.Printf("Seeded %s with %d posts (password: %s)\n", u.username, len(u.posts), seedPasswordHashSource)
	}
}
