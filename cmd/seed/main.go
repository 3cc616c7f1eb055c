package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devtrails/bootcamp-api/config"
	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/infrastructure/mongodb"
	"github.com/devtrails/bootcamp-api/pkg/geocoder"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

// Loads the JSON fixtures in _data/ into MongoDB, or wipes every
// collection. Intended for local development and demos.
//
//	go run ./cmd/seed -import
//	go run ./cmd/seed -destroy
func main() {
	doImport := flag.Bool("import", false, "import fixture data")
	doDestroy := flag.Bool("destroy", false, "delete all data")
	dataDir := flag.String("data", "_data", "fixture directory")
	flag.Parse()

	if *doImport == *doDestroy {
		log.Fatal("pass exactly one of -import or -destroy")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, closeMongo, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer closeMongo()

	if *doDestroy {
		for _, name := range []string{mongodb.UsersCollection, mongodb.BootcampsCollection, mongodb.CoursesCollection, mongodb.ReviewsCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Fatalf("dropping %s: %v", name, err)
			}
		}
		log.Println("data destroyed")
		return
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}
	if err := importAll(ctx, cfg, db, *dataDir); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Println("data imported")
}

func importAll(ctx context.Context, cfg *config.Config, db *mongo.Database, dir string) error {
	now := time.Now().UTC()

	var users []seedUser
	if err := loadFixture(filepath.Join(dir, "users.json"), &users); err != nil {
		return err
	}
	for _, u := range users {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			return err
		}
		doc := entity.User{
			ID:           mustOID(u.ID),
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			Password:     hash,
			FirstCreated: now,
			LastUpdated:  now,
		}
		if _, err := db.Collection(mongodb.UsersCollection).InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	geo := geocoder.New(cfg.GeocoderURL, cfg.GeocoderKey)
	var bootcamps []seedBootcamp
	if err := loadFixture(filepath.Join(dir, "bootcamps.json"), &bootcamps); err != nil {
		return err
	}
	for _, b := range bootcamps {
		doc := entity.Bootcamp{
			ID:            mustOID(b.ID),
			User:          mustOID(b.User),
			Name:          b.Name,
			Slug:          entity.Slugify(b.Name),
			Description:   b.Description,
			Website:       b.Website,
			Phone:         b.Phone,
			Email:         b.Email,
			Address:       b.Address,
			Careers:       b.Careers,
			Housing:       b.Housing,
			JobAssistance: b.JobAssistance,
			JobGuarantee:  b.JobGuarantee,
			AcceptGi:      b.AcceptGi,
			FirstCreated:  now,
			LastUpdated:   now,
		}
		if cfg.GeocoderKey != "" {
			if loc, err := geo.Geocode(ctx, b.Address); err != nil {
				log.Printf("geocode %q: %v", b.Name, err)
			} else {
				doc.Location = &entity.Location{
					Type:             "Point",
					Coordinates:      []float64{loc.Longitude, loc.Latitude},
					FormattedAddress: loc.Formatted,
					Street:           loc.Street,
					City:             loc.City,
					State:            loc.State,
					Zipcode:          loc.Zipcode,
					Country:          loc.Country,
				}
			}
		}
		if _, err := db.Collection(mongodb.BootcampsCollection).InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	var courses []seedCourse
	if err := loadFixture(filepath.Join(dir, "courses.json"), &courses); err != nil {
		return err
	}
	for _, c := range courses {
		doc := entity.Course{
			ID:                   mustOID(c.ID),
			Bootcamp:             mustOID(c.Bootcamp),
			User:                 mustOID(c.User),
			Title:                c.Title,
			Description:          c.Description,
			Weeks:                c.Weeks,
			Tuition:              c.Tuition,
			MinimumSkill:         c.MinimumSkill,
			ScholarshipAvailable: c.ScholarshipAvailable,
			FirstCreated:         now,
			LastUpdated:          now,
		}
		if _, err := db.Collection(mongodb.CoursesCollection).InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	var reviews []seedReview
	if err := loadFixture(filepath.Join(dir, "reviews.json"), &reviews); err != nil {
		return err
	}
	for _, r := range reviews {
		doc := entity.Review{
			ID:           mustOID(r.ID),
			Bootcamp:     mustOID(r.Bootcamp),
			User:         mustOID(r.User),
			Title:        r.Title,
			Text:         r.Text,
			Rating:       r.Rating,
			FirstCreated: now,
			LastUpdated:  now,
		}
		if _, err := db.Collection(mongodb.ReviewsCollection).InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	// Derived averages are maintained on write, so recompute them once
	// after the bulk insert.
	svc := application.NewService(
		mongodb.NewBootcampRepository(db),
		mongodb.NewCourseRepository(db),
		mongodb.NewReviewRepository(db),
		helpers.NewLogger(cfg.AppName, cfg.Env),
	)
	for _, b := range bootcamps {
		id := mustOID(b.ID)
		if err := svc.RecomputeAverageCost(ctx, id); err != nil {
			return err
		}
		if err := svc.RecomputeAverageRating(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type seedUser struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type seedBootcamp struct {
	ID            string   `json:"_id"`
	User          string   `json:"user"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

type seedCourse struct {
	ID                   string  `json:"_id"`
	Bootcamp             string  `json:"bootcamp"`
	User                 string  `json:"user"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Weeks                int     `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type seedReview struct {
	ID       string `json:"_id"`
	Bootcamp string `json:"bootcamp"`
	User     string `json:"user"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

func loadFixture(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func mustOID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		log.Fatalf("bad object id %q: %v", hex, err)
	}
	return id
}
