package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarais/go-autoquote/internal/core"
	"github.com/dmarais/go-autoquote/internal/platform/config"
	"github.com/dmarais/go-autoquote/internal/platform/logging"
	"github.com/dmarais/go-autoquote/internal/store/dynamo"
	"github.com/dmarais/go-autoquote/internal/store/mongo"
)

// Seeds a handful of demo quotes by running representative requests
// through the full quoting pipeline.
func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo core.QuoteRepo
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			log.Error("mongo connect failed", "err", err)
			return
		}
		defer client.Close(ctx)
		repo = mongo.NewQuoteRepo(client.DB, time.Duration(cfg.MongoOpTimeoutMs)*time.Millisecond)
	default:
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			log.Error("dynamodb connect failed", "err", err)
			return
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			log.Error("dynamodb table setup failed", "err", err)
			return
		}
		repo = dynamo.NewQuoteRepo(client.DB)
	}

	rating, err := core.NewRatingConfig(cfg.VINPattern,
		cfg.MinDriverAge, cfg.MaxDriverAge, cfg.MaxVehicleAge, cfg.MaxDrivers,
		cfg.BasePremium)
	if err != nil {
		log.Error("invalid rating config", "err", err)
		return
	}

	svc := core.NewQuoteService(repo, rating, nil, log)

	log.Info("seeding demo quotes")
	for _, req := range demoRequests() {
		resp, err := svc.GenerateQuote(ctx, req)
		if err != nil {
			log.Error("seed quote failed", "err", err)
			continue
		}
		log.Info("seeded quote",
			"quote_id", resp.ID,
			"final_premium", resp.FinalPremium,
			"monthly_premium", resp.MonthlyPremium)
	}
	log.Info("done seeding")
}

func demoRequests() []*core.QuoteRequest {
	experienced := 12
	novice := 2
	now := time.Now()

	return []*core.QuoteRequest{
		{
			Vehicle: &core.Vehicle{
				Make:         "Toyota",
				Model:        "Camry",
				Year:         now.Year() - 3,
				VIN:          "4T1BF1FK5HU123456",
				CurrentValue: decimal.NewFromInt(24000),
			},
			Drivers: []core.Driver{{
				FirstName:          "Alex",
				LastName:           "Meyer",
				DateOfBirth:        now.AddDate(-42, 0, 0),
				LicenseNumber:      "D1234567",
				LicenseState:       "CA",
				YearsOfExperience:  &experienced,
				SafeDriverDiscount: true,
			}},
			CoverageAmount: decimal.NewFromInt(100000),
			Deductible:     decimal.NewFromInt(1000),
		},
		{
			Vehicle: &core.Vehicle{
				Make:         "Honda",
				Model:        "Civic",
				Year:         now.Year() - 8,
				VIN:          "2HGFC2F59JH543210",
				CurrentValue: decimal.NewFromInt(13500),
			},
			Drivers: []core.Driver{
				{
					FirstName:           "Priya",
					LastName:            "Raman",
					DateOfBirth:         now.AddDate(-35, -2, 0),
					LicenseNumber:       "R7654321",
					LicenseState:        "TX",
					YearsOfExperience:   &experienced,
					SafeDriverDiscount:  true,
					MultiPolicyDiscount: true,
				},
				{
					FirstName:         "Dev",
					LastName:          "Raman",
					DateOfBirth:       now.AddDate(-21, 3, 0),
					LicenseNumber:     "R1122334",
					LicenseState:      "TX",
					YearsOfExperience: &novice,
				},
			},
			CoverageAmount: decimal.NewFromInt(250000),
			Deductible:     decimal.NewFromInt(500),
		},
	}
}
