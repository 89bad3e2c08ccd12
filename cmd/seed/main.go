package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/entity"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"

	_ "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/mongodb"
	_ "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/postgres"
)

var demoProducts = []entity.ProductInput{
	{Name: "Laptop", Description: "14 inch ultrabook", Price: 899.99, Stock: 10, Category: "electronica"},
	{Name: "Mouse", Description: "Wireless mouse", Price: 19.5, Stock: 120, Category: "electronica"},
	{Name: "Martillo", Description: "Steel claw hammer", Price: 12.75, Stock: 40, Category: "herramientas"},
	{Name: "Cuaderno", Description: "A5 dotted notebook", Price: 3.2, Stock: 0, Category: "papeleria"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := engine.Select(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to bind storage: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	email := "demo@productos.local"
	password := "password123"
	name := "demoUser"

	existing, err := store.Users().FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to look up demo user: %v", err)
	}
	if existing != nil {
		fmt.Printf("demo user already present: id=%s email=%s, skipping seed\n", existing.User.ID, email)
		return
	}

	u, err := store.Users().Create(ctx, name, email, password)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)

	for _, in := range demoProducts {
		p, err := store.Products().Create(ctx, in)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", in.Name, err)
		}
		fmt.Printf("seeded product: id=%s nombre=%s precio=%.2f\n", p.ID, p.Name, p.Price)
	}
	fmt.Printf("seed complete on %s\n", store.Name())
}
