package main

import (
	"context"
	"flag"
	"log"
	"os"

	"earn_webapp/internal/db"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/repository"
	"earn_webapp/internal/service"
)

func main() {
	upi := flag.String("upi", "9876543210@ybl", "UPI id of the test account")
	chatID := flag.Int64("chat", 0, "telegram chat id for notifications (0 for none)")
	flag.Parse()

	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := repository.NewAccountRepository(pool)
	a, err := repo.FindByUPI(ctx, *upi)
	if err != nil {
		log.Fatalf("lookup account: %v", err)
	}
	if a != nil {
		log.Printf("account already exists id=%d\n", a.ID)
	} else {
		a = &domain.Account{UPIID: *upi}
		if *chatID != 0 {
			a.TelegramChatID = chatID
		}
		if err := repo.Create(ctx, a); err != nil {
			log.Fatalf("create account failed: %v", err)
		}
		log.Printf("account created id=%d\n", a.ID)
	}
	log.Printf("upi=%s mobile=%s balance=%s\n", a.UPIID, a.Mobile(), a.AvailableBalance.StringFixed(2))

	service.InitJWT(os.Getenv("JWT_SECRET"))
	token, err := service.GenerateAdminJWT("test-admin")
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("admin_token=%s\n", token)
}
