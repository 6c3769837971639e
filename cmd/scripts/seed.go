// Command seed populates a development database with demo users,
// raffles and tickets. It is destructive only in the sense that it
// inserts duplicates when run twice against the same database.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/scripts
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rafflehub/raffle-api/internal/db"
	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	postgresDB, err := db.OpenPostgresWithURL(dbURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	}

	ctx := context.Background()

	if err = seed(ctx, postgresDB); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("seeding complete")
}

func seed(ctx context.Context, gormDB *gorm.DB) error {
	userDAO := dao.NewUserDAO(gormDB)
	raffleDAO := dao.NewRaffleDAO(gormDB)
	ticketDAO := dao.NewTicketDAO(gormDB)

	now := time.Now().UTC()

	admin, err := seedUser(ctx, userDAO, "admin@example.com", "Admin1234", "Admin", domain.RoleAdmin)
	if err != nil {
		return err
	}

	alice, err := seedUser(ctx, userDAO, "alice@example.com", "Alice1234", "Alice", domain.RoleUser)
	if err != nil {
		return err
	}

	bob, err := seedUser(ctx, userDAO, "bob@example.com", "Bob12345", "Bob", domain.RoleUser)
	if err != nil {
		return err
	}

	log.Printf("seeded users: admin=%d alice=%d bob=%d", admin.ID, alice.ID, bob.ID)

	raffles := []dao.Raffle{
		{
			Title:            "Mountain Bike Giveaway",
			Description:      "Win a brand new mountain bike.",
			PrizeDescription: "Mountain bike, helmet, and lock",
			TicketPrice:      2.50,
			TotalTickets:     200,
			AvailableTickets: 160,
			StartDate:        now.AddDate(0, 0, -7),
			EndDate:          now.AddDate(0, 0, 14),
			Status:           string(domain.RaffleStatusActive),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		{
			Title:            "Holiday Hamper",
			Description:      "A festive basket of treats.",
			PrizeDescription: "Gourmet food hamper",
			TicketPrice:      1.00,
			TotalTickets:     100,
			AvailableTickets: 100,
			StartDate:        now.AddDate(0, 0, 3),
			EndDate:          now.AddDate(0, 1, 0),
			Status:           string(domain.RaffleStatusDraft),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		{
			Title:            "Spring Concert Tickets",
			Description:      "Two front-row seats.",
			PrizeDescription: "Concert tickets for two",
			TicketPrice:      5.00,
			TotalTickets:     50,
			AvailableTickets: 0,
			StartDate:        now.AddDate(0, -2, 0),
			EndDate:          now.AddDate(0, 0, -10),
			Status:           string(domain.RaffleStatusEnded),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}

	for i, raffle := range raffles {
		inserted, err := raffleDAO.Insert(ctx, raffle)
		if err != nil {
			return fmt.Errorf("raffleDAO.Insert -> %w", err)
		}

		raffles[i] = inserted
	}

	log.Printf("seeded %d raffles", len(raffles))

	tickets := []dao.RaffleTicket{
		{RaffleID: raffles[0].ID, UserID: alice.ID},
		{RaffleID: raffles[0].ID, UserID: bob.ID},
		{RaffleID: raffles[2].ID, UserID: alice.ID},
	}

	for _, ticket := range tickets {
		ticket.Number = uuid.NewString()
		ticket.CreatedAt = now

		if _, err := ticketDAO.Insert(ctx, ticket); err != nil {
			return fmt.Errorf("ticketDAO.Insert -> %w", err)
		}
	}

	log.Printf("seeded %d tickets", len(tickets))

	return nil
}

func seedUser(ctx context.Context, userDAO *dao.UserDAO, email, password, name, role string) (dao.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dao.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	user, err := userDAO.Insert(ctx, dao.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
	})
	if err != nil {
		return dao.User{}, fmt.Errorf("userDAO.Insert -> %w", err)
	}

	if err = userDAO.InsertRole(ctx, user.ID, role); err != nil {
		return dao.User{}, fmt.Errorf("userDAO.InsertRole -> %w", err)
	}

	return user, nil
}
