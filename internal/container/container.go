package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devtrails/bootcamp-api/config"
	"github.com/devtrails/bootcamp-api/pkg/geocoder"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/mailer"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire their dependencies from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *mongo.Database
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	geo         geocoder.Geocoder
	photos      helpers.PhotoStore
	mg          *mailer.Mailgun
	rabbitPub   *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetMongo(d *mongo.Database)              { db = d }
func GetMongo() *mongo.Database               { return db }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func GetJWT() *helpers.JWTManager             { return jwtManager }
func SetGeocoder(g geocoder.Geocoder)         { geo = g }
func GetGeocoder() geocoder.Geocoder          { return geo }
func SetPhotoStore(p helpers.PhotoStore)      { photos = p }
func GetPhotoStore() helpers.PhotoStore       { return photos }
func SetMailgun(m *mailer.Mailgun)            { mg = m }
func GetMailgun() *mailer.Mailgun             { return mg }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
