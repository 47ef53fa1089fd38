package database

import (
	"culturefit_backend/internal/config"
	"culturefit_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Campaign{},
		&model.Question{},
		&model.Invite{},
		&model.Candidate{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the default questionnaire when the table is empty. Question
	// order is by ascending id, so insertion order matters here.
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count == 0 {
		ko := func(v float64) *float64 { return &v }
		defaultQuestions := []model.Question{
			{Text: "I follow through on commitments even when nobody is checking.", Trait: "Conscientiousness", Reverse: false},
			{Text: "I tend to leave tasks unfinished when they get boring.", Trait: "Conscientiousness", Reverse: true, KOThreshold: ko(2)},
			{Text: "I enjoy collaborating with people whose views differ from mine.", Trait: "Teamwork", Reverse: false},
			{Text: "I prefer to work alone and avoid depending on colleagues.", Trait: "Teamwork", Reverse: true},
			{Text: "I stay calm and constructive when plans change at the last minute.", Trait: "Adaptability", Reverse: false},
			{Text: "Sudden changes in priorities frustrate me for a long time.", Trait: "Adaptability", Reverse: true},
			{Text: "I would report a mistake I made even if nobody would notice it.", Trait: "Integrity", Reverse: false, KOThreshold: ko(2)},
			{Text: "Bending the rules is acceptable when it helps hit a deadline.", Trait: "Integrity", Reverse: true, KOThreshold: ko(2)},
			{Text: "I ask clarifying questions rather than assume what was meant.", Trait: "Communication", Reverse: false},
			{Text: "I share relevant information with the team without being asked.", Trait: "Communication", Reverse: false},
		}
		for _, q := range defaultQuestions {
			db.Create(&q)
		}
	}

	return db, nil
}
