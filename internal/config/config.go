package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BranchConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	AdminUsername string
	AdminPassword string

	// Scheduling policy. Explicit configuration, never inferred from the
	// request or the host environment.
	DailyScheduleLimit   int
	AllowWeekendSchedule bool
	WorkStartTime        string
	WorkEndTime          string
	Timezone             string
}

var instance *BranchConfig
var once sync.Once

func GetBranchConfig() *BranchConfig {
	once.Do(func() {
		instance = &BranchConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("No .env file loaded: %s", err.Error())
		}

		instance.Port = getEnv("PORT", ":8080")
		instance.DatabaseURL = getEnv("DATABASE_URL", "branch-scheduler.db")

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get JWT secret")
		}

		instance.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
		instance.AdminPassword = getEnv("ADMIN_PASSWORD", "")

		instance.DailyScheduleLimit = int(getEnvAsInt("DAILY_SCHEDULE_LIMIT", 5))
		instance.AllowWeekendSchedule = getEnvAsBool("ALLOW_WEEKEND_SCHEDULE", false)
		instance.WorkStartTime = getEnv("WORK_START_TIME", "07:30")
		instance.WorkEndTime = getEnv("WORK_END_TIME", "17:30")

		instance.Timezone = getEnv("TIMEZONE", "Asia/Ho_Chi_Minh")
		if _, err := time.LoadLocation(instance.Timezone); err != nil {
			logrus.Fatalf("invalid TIMEZONE %q: %s", instance.Timezone, err.Error())
		}
	})

	return instance
}

// Location resolves the configured timezone.
func (c *BranchConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
