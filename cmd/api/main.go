package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"photobooking/internal/config"
	"photobooking/internal/database"
	"photobooking/internal/middleware"
	"photobooking/internal/modules/catalog"
	"photobooking/internal/modules/coupon"
	"photobooking/internal/modules/draft"
	"photobooking/internal/modules/proof"
	"photobooking/internal/modules/steps"
	"photobooking/internal/modules/submission"
	tokensvc "photobooking/internal/pkg/token"
	"photobooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	cacheRepo := repository.NewDraftCacheRepository(db)
	if err := cacheRepo.Migrate(); err != nil {
		log.Fatal(err)
	}

	tokens := tokensvc.New(cfg.TokenSecret, cfg.TokenTTL)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	couponClient := coupon.NewClient(cfg.CouponBaseURL)
	proofs := proof.NewService(cfg.UploadsDir, cfg.StaticBase)

	store := draft.NewStore(cacheRepo, log.Printf)
	rules := steps.NewRules(cfg.DPMinAmount)
	machine := steps.NewMachine(store, rules, steps.TotalSteps)
	couponSvc := coupon.NewService(couponClient, store, log.Printf)
	hub := coupon.NewHub()
	defer hub.Close()

	messenger := submission.NewMessenger(cfg.MessageTemplate, cfg.WhatsAppNumber)
	submitSvc := submission.NewService(
		store,
		machine,
		proofs,
		couponSvc,
		messenger,
		cfg.BookingBaseURL,
		cfg.BookingToken,
		log.Printf,
	)

	draftHandler := draft.NewHandler(store, catalogClient, proofs, tokens)
	catalogHandler := catalog.NewHandler(catalogClient)
	couponHandler := coupon.NewHandler(couponSvc, hub, cfg.SuggestInterval)
	stepsHandler := steps.NewHandler(machine)
	submitHandler := submission.NewHandler(submitSvc)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)
		draftHandler.RegisterPublicRoutes(v1)

		// draft-scoped
		scoped := v1.Group("/")
		scoped.Use(middleware.DraftToken(tokens))
		{
			draftHandler.RegisterRoutes(scoped)
			couponHandler.RegisterRoutes(scoped)
			stepsHandler.RegisterRoutes(scoped)
			submitHandler.RegisterRoutes(scoped)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
