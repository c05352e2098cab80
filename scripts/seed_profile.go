package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Yeralkhan06/MyProfile3/adapters/persistence"
	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "overwrite an existing profile with the sample data")
	flag.Parse()

	fmt.Println("seeding profile into database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
		log.Fatalf("cannot migrate: %v", err)
	}

	ctx := context.Background()
	pool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	sample := sampleProfile()
	cmdTag, err := pool.Exec(ctx,
		`INSERT INTO profile (id, first_name, last_name, email) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
		profile.OwnerProfileID, sample.FirstName, sample.LastName, sample.Email)
	if err != nil {
		log.Fatalf("cannot insert profile: %v", err)
	}
	if cmdTag.RowsAffected() == 0 && !*force {
		fmt.Println("profile already exists, use -force to overwrite it")
		printOwnerHash()
		return
	}

	repo := persistence.NewPostgresProfileRepo(pool, appLogger)
	err = repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		if err := w.ReplaceProfile(ctx, sample.Fields); err != nil {
			return err
		}
		if err := w.ReplaceSkills(ctx, sample.Skills); err != nil {
			return err
		}
		if err := w.ReplaceExperience(ctx, sample.Experience); err != nil {
			return err
		}
		if err := w.ReplaceEducation(ctx, sample.Education); err != nil {
			return err
		}
		return w.ReplaceProjects(ctx, sample.Projects)
	})
	if err != nil {
		log.Fatalf("cannot write sample data: %v", err)
	}

	fmt.Printf("seeded profile '%s %s' successfully!\n", sample.FirstName, sample.LastName)
	printOwnerHash()
}

// printOwnerHash prints a bcrypt hash for OWNER_PASSWORD, ready for OWNER_PASSWORD_HASH.
func printOwnerHash() {
	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}
	fmt.Printf("OWNER_PASSWORD_HASH=%s\n", hash)
}

func ptr(s string) *string { return &s }

func sampleProfile() *profile.Profile {
	html := []string{"HTML", "CSS", "JavaScript"}
	return &profile.Profile{
		Fields: profile.Fields{
			FirstName:      "Мақсұт",
			LastName:       "Ералхан",
			MiddleName:     ptr("Дарханұлы"),
			Email:          "yeralkhan@example.com",
			Phone:          ptr("8 777 199 9922"),
			Location:       ptr("Казахстан"),
			Bio:            ptr("Занимается версткой сайта, а также Java разработчик. Создаю веб-приложения и небольшие проекты. Также увлекаюсь дизайном и созданием контента."),
			GithubUsername: ptr("Yeralkhan06"),
		},
		Skills: []profile.Skill{
			{Name: "Верстка сайтов", Level: 85, Category: ptr("Frontend")},
			{Name: "Java разработка", Level: 80, Category: ptr("Backend")},
			{Name: "Создание приложений", Level: 75, Category: ptr("Development")},
			{Name: "Художество", Level: 70, Category: ptr("Art")},
			{Name: "Контент-мейкинг", Level: 65, Category: ptr("Content")},
			{Name: "HTML/CSS", Level: 90, Category: ptr("Web")},
		},
		Experience: []profile.Experience{
			{
				CompanyName:  "ТехКомпани",
				Position:     "Senior Web Developer",
				StartDate:    "2022-01-01",
				Description:  ptr("Разработка и поддержка веб-приложений, архитектура проектов, менторство разработчиков"),
				Technologies: []string{"React", "Node.js", "PostgreSQL", "AWS"},
			},
		},
		Education: []profile.Education{
			{
				InstitutionName: "Международный Университет Астана",
				Degree:          "Выпускник",
				FieldOfStudy:    ptr("Программирование и веб-разработка"),
				StartDate:       "2018-09-01",
				EndDate:         ptr("2022-06-30"),
				Description:     ptr("Изучение основ программирования, веб-технологий и разработки программного обеспечения"),
			},
		},
		Projects: []profile.Project{
			{Name: "Video Production", Description: ptr("Веб-сайт для видеопродукции с современным дизайном"),
				GithubURL: ptr("https://github.com/Yeralkhan06/Video-Production"), DemoURL: ptr("https://yeralkhan06.github.io/Video-Production/"),
				Technologies: html, StartDate: ptr("2024-01-01")},
			{Name: "Hello2Site", Description: ptr("Многостраничный корпоративный сайт"),
				GithubURL: ptr("https://github.com/Yeralkhan06/Hello2Site"), DemoURL: ptr("https://yeralkhan06.github.io/Hello2Site/"),
				Technologies: html, StartDate: ptr("2024-02-01")},
			{Name: "AirPlan3", Description: ptr("Интерактивное приложение для планирования путешествий"),
				GithubURL: ptr("https://github.com/Yeralkhan06/AirPlan3"), DemoURL: ptr("https://yeralkhan06.github.io/AirPlan3/"),
				Technologies: html, StartDate: ptr("2024-03-01")},
			{Name: "Vet Clinic API", Description: ptr("REST API для ветеринарной клиники на Java"),
				GithubURL: ptr("https://github.com/Yeralkhan06/vet-clinic-api1"), DemoURL: ptr("https://yeralkhan06.github.io/vet-clinic-api1/"),
				Technologies: []string{"Java", "Spring Boot", "MySQL"}, StartDate: ptr("2024-04-01")},
		},
	}
}
