package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-pms-backend/models"

	"gorm.io/driver/mysql"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_pms")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens MySQL when configured, or a local SQLite file when
// DB_DRIVER=sqlite, then runs migrations and seeds reference data.
func ConnectDatabase() error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	if strings.EqualFold(envOrDefault("DB_DRIVER", "mysql"), "sqlite") {
		dsn := envOrDefault("SQLITE_PATH", "hotel_pms.db")
		log.Println("Using SQLite for local development:", dsn)
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{
				DriverName: "sqlite",
				DSN:        dsn,
			}),
			&gorm.Config{Logger: newLogger},
		)
	} else {
		var dsn string
		dsn, err = resolveMySQLDSN()
		if err != nil {
			return err
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	}
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.BookingSequence{},
		&models.Booking{},
		&models.BookingFee{},
		&models.Payment{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// SeedDatabase inserts the starter catalog when the tables are empty.
func SeedDatabase() {
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", Price: 1000, MaxAdults: 2, MaxChildren: 1, ExtraAdultFee: 300, ExtraChildFee: 150},
			{Name: "Superior", Description: "Superior Room", Price: 1500, MaxAdults: 2, MaxChildren: 2, ExtraAdultFee: 400, ExtraChildFee: 200},
			{Name: "Deluxe", Description: "Deluxe Room", Price: 2200, MaxAdults: 3, MaxChildren: 2, ExtraAdultFee: 500, ExtraChildFee: 250},
			{Name: "Connecting", Description: "Connecting Room", Price: 3000, MaxAdults: 4, MaxChildren: 3, ExtraAdultFee: 500, ExtraChildFee: 250},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("RoomTypes seeded")
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var types []models.RoomType
		DB.Order("id").Find(&types)
		byName := map[string]uint{}
		for _, rt := range types {
			byName[rt.Name] = rt.ID
		}

		rooms := []models.Room{
			{RoomNumber: "101", Floor: 1, Status: models.RoomAvailable, RoomTypeID: byName["Standard"]},
			{RoomNumber: "102", Floor: 1, Status: models.RoomAvailable, RoomTypeID: byName["Standard"]},
			{RoomNumber: "103", Floor: 1, Status: models.RoomAvailable, RoomTypeID: byName["Superior"]},
			{RoomNumber: "201", Floor: 2, Status: models.RoomAvailable, RoomTypeID: byName["Superior"]},
			{RoomNumber: "202", Floor: 2, Status: models.RoomAvailable, RoomTypeID: byName["Deluxe"]},
			{RoomNumber: "301", Floor: 3, Status: models.RoomAvailable, RoomTypeID: byName["Deluxe"]},
			{RoomNumber: "302", Floor: 3, Status: models.RoomAvailable, RoomTypeID: byName["Connecting"]},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	var menuCount int64
	DB.Model(&models.Menu{}).Count(&menuCount)
	if menuCount == 0 {
		menus := []models.Menu{
			{Name: "Pad Thai", Category: "Main", Price: 120, Stock: 30, IsAvailable: true},
			{Name: "Green Curry", Category: "Main", Price: 150, Stock: 25, IsAvailable: true},
			{Name: "Spring Rolls", Category: "Appetizer", Price: 80, Stock: 40, IsAvailable: true},
			{Name: "Mango Sticky Rice", Category: "Dessert", Price: 95, Stock: 20, IsAvailable: true},
			{Name: "Thai Iced Tea", Category: "Drink", Price: 55, Stock: 50, IsAvailable: true},
		}
		if err := DB.Create(&menus).Error; err != nil {
			log.Printf("warning: failed to seed menu: %v", err)
		} else {
			log.Println("Menu seeded")
		}
	}
}
