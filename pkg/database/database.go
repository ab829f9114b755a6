package database

import (
	"fmt"
	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate via the -migrate/-migrate-only flags
	// instead of on every boot.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Enrollment{},
		&model.QuestionSet{},
		&model.Question{},
		&model.Option{},
		&model.TryoutSession{},
		&model.TryoutParticipant{},
		&model.ActivityLog{},
		&model.Vocabulary{},
		&model.LiveSession{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a starter vocabulary pack on an empty database
	var count int64
	db.Model(&model.Vocabulary{}).Count(&count)
	if count == 0 {
		starter := []model.Vocabulary{
			{Hangul: "안녕하세요", Romanization: "annyeonghaseyo", Translation: "hello", ExampleSentence: "안녕하세요, 만나서 반갑습니다.", ExampleTranslation: "Hello, nice to meet you.", Level: model.Beginner},
			{Hangul: "감사합니다", Romanization: "gamsahamnida", Translation: "thank you", ExampleSentence: "도와주셔서 감사합니다.", ExampleTranslation: "Thank you for your help.", Level: model.Beginner},
			{Hangul: "죄송합니다", Romanization: "joesonghamnida", Translation: "I am sorry", ExampleSentence: "늦어서 죄송합니다.", ExampleTranslation: "I am sorry for being late.", Level: model.Beginner},
			{Hangul: "공부하다", Romanization: "gongbuhada", Translation: "to study", ExampleSentence: "저는 한국어를 공부해요.", ExampleTranslation: "I study Korean.", Level: model.Beginner},
		}
		for _, v := range starter {
			db.Create(&v)
		}
	}

	return db, nil
}
