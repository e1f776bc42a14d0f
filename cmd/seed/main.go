// seed puebla la base con un usuario de demostración y un inventario de
// cantine (lote, líneas y algunos movimientos de salida) para probar la API
// y el dashboard en local.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/essaghir/stock-ledger-api/internal/application/auth"
	"github.com/essaghir/stock-ledger-api/internal/application/dto"
	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/application/usecase"
	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/essaghir/stock-ledger-api/pkg/config"
	"github.com/essaghir/stock-ledger-api/pkg/logger"
)

type seedLine struct {
	name     string
	category string
	quality  int
	price    float64
	unite    string
	initial  int64
	min      int64
}

var demoLines = []seedLine{
	{"Tomates", "Légumes (خضروات)", 4, 2.50, "kg", 120, 30},
	{"Pommes de terre", "Légumes (خضروات)", 3, 1.20, "kg", 200, 50},
	{"Pommes", "Fruits (فواكه)", 5, 3.00, "kg", 80, 20},
	{"Riz basmati", "Épicerie", 4, 4.20, "kg", 150, 40},
	{"Huile d'olive", "Épicerie", 5, 9.90, "L", 40, 10},
	{"Poulet", "Viandes (لحوم)", 4, 8.50, "kg", 60, 15},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	upRepo := postgres.NewUserProductRepository(pool)
	lineRepo := postgres.NewProductLineRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reconcileUC := appstock.NewReconcileUseCase(txRunner, lineRepo, upRepo)
	userProductUC := usecase.NewUserProductUseCase(txRunner, upRepo, lineRepo)

	// Usuario demo (admin). Si ya existe, se reutiliza.
	demoUser, err := authUC.Register(dto.RegisterRequest{
		Email:    "chef@cantine.fr",
		Password: "demo-password-123",
		Name:     "Chef de cantine",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			log.Fatal().Err(err).Msg("crear usuario demo")
		}
		existing, err := userRepo.GetByEmail("chef@cantine.fr")
		if err != nil || existing == nil {
			log.Fatal().Err(err).Msg("recuperar usuario demo")
		}
		demoUser = &dto.UserResponse{ID: existing.ID, Email: existing.Email}
	}
	log.Info().Str("user_id", demoUser.ID).Msg("usuario demo listo")

	// Lote de entrega con sus líneas (cada línea registra su IN inicial).
	lot, err := userProductUC.Create(demoUser.ID, dto.CreateUserProductRequest{Name: "Livraison de septembre"})
	if err != nil {
		log.Fatal().Err(err).Msg("crear lote demo")
	}

	lineIDs := make([]string, 0, len(demoLines))
	for _, l := range demoLines {
		created, err := userProductUC.AddProductLine(ctx, demoUser.ID, lot.ID, dto.CreateProductLineRequest{
			Name:          l.name,
			CategoryLabel: l.category,
			Quality:       l.quality,
			UnitPrice:     decimal.NewFromFloat(l.price),
			Unite:         l.unite,
			InitialStock:  decimal.NewFromInt(l.initial),
			MinStock:      decimal.NewFromInt(l.min),
		})
		if err != nil {
			log.Fatal().Err(err).Str("line", l.name).Msg("crear línea demo")
		}
		lineIDs = append(lineIDs, created.ID)
		log.Info().Str("line", l.name).Str("category_key", created.CategoryKey).Msg("línea creada")
	}

	// Algunas salidas de cocina para que el dashboard tenga datos.
	outs := []struct {
		idx int
		qty int64
	}{
		{0, 25}, {1, 40}, {3, 20}, {5, 12},
	}
	for _, o := range outs {
		_, err := reconcileUC.ApplyMovement(ctx, appstock.MovementInput{
			UserID:        demoUser.ID,
			ProductLineID: lineIDs[o.idx],
			UserProductID: lot.ID,
			Type:          entity.MovementTypeOUT,
			Quantity:      decimal.NewFromInt(o.qty),
			Reason:        "Préparation des repas",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("registrar salida demo")
		}
	}

	log.Info().Str("lot_id", lot.ID).Int("lines", len(lineIDs)).Msg("seed completado")
}
