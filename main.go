package main

import (
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/AdmiralGufi/real-estate-app/internal/config"
	"github.com/AdmiralGufi/real-estate-app/internal/currency"
	"github.com/AdmiralGufi/real-estate-app/internal/handler"
	"github.com/AdmiralGufi/real-estate-app/internal/middleware"
	"github.com/AdmiralGufi/real-estate-app/internal/mongo"
	"github.com/AdmiralGufi/real-estate-app/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}
	cfg := config.Load()

	repo := newRepository(cfg)

	converter := currency.NewConverter(
		currency.DefaultProviders(cfg.Currency.APIKey),
		cfg.Currency.CacheFile,
	)

	listingHandler := &handler.ListingHandler{Repo: repo, Converter: converter}
	statsHandler := &handler.StatsHandler{Repo: repo}
	currencyHandler := &handler.CurrencyHandler{Converter: converter}
	authHandler := &handler.AuthHandler{Token: handler.IssueToken(cfg.JWTSecret)}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":       "real-estate-app API",
			"mapsApiKey": cfg.MapsAPIKey,
			"endpoints": []string{
				"GET /api/properties?type=&district=&minPrice=&maxPrice=&currency=&sort=&bbox=",
				"GET /api/properties/:id",
				"POST /api/properties",
				"PUT /api/properties/:id",
				"DELETE /api/properties/:id",
				"GET /api/districts",
				"GET /api/rate",
				"GET /api/stats",
				"POST /api/login",
			},
		})
	})

	api := r.Group("/api")
	listingHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)
	currencyHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	log.Printf("Сервер запущен на http://%s …", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newRepository выбирает бэкенд хранилища: Postgres, если задан DATABASE_URL,
// иначе MongoDB, если задан MONGO_URI, иначе JSON-файл.
func newRepository(cfg *config.Config) repository.ListingRepository {
	if cfg.Storage.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		log.Println("Хранилище: Postgres")
		return repository.NewPostgresRepository(db)
	}

	if cfg.Storage.MongoURI != "" {
		client := mongo.NewMongoClient(cfg.Storage.MongoURI)
		log.Println("Хранилище: MongoDB")
		return repository.NewMongoRepository(client, cfg.Storage.MongoDB)
	}

	log.Printf("Хранилище: файл %s", cfg.Storage.PropertiesFile)
	return repository.NewFileRepository(cfg.Storage.PropertiesFile)
}
