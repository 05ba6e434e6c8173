package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Grader       Grader
	Session      Session
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Grader struct {
	FastAnswerMs     int
	SlowAnswerMs     int
	MaxAnswerChanges int
}

type Session struct {
	MaxQuestions      int
	InactivityMinutes int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GRADER_FAST_ANSWER_MS", 5000)
	viper.SetDefault("GRADER_SLOW_ANSWER_MS", 15000)
	viper.SetDefault("GRADER_MAX_ANSWER_CHANGES", 2)
	viper.SetDefault("SESSION_MAX_QUESTIONS", 20)
	viper.SetDefault("SESSION_INACTIVITY_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Grader.FastAnswerMs = viper.GetInt("GRADER_FAST_ANSWER_MS")
	config.Grader.SlowAnswerMs = viper.GetInt("GRADER_SLOW_ANSWER_MS")
	config.Grader.MaxAnswerChanges = viper.GetInt("GRADER_MAX_ANSWER_CHANGES")

	config.Session.MaxQuestions = viper.GetInt("SESSION_MAX_QUESTIONS")
	config.Session.InactivityMinutes = viper.GetInt("SESSION_INACTIVITY_MINUTES")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Msg("Config loaded")
	return &config, nil
}
